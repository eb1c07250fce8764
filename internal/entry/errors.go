package entry

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/metcalfc/wordlist/internal/grammar"
)

var (
	// ErrMissingField means a mandatory field did not match.
	ErrMissingField = errors.New("missing mandatory field")
	// ErrTrailingText means the grammar matched but input remained.
	ErrTrailingText = errors.New("trailing unconsumed text")
	// ErrDuplicateType flags an entry that lists a part of speech twice.
	// It is reported for review and never fails a parse.
	ErrDuplicateType = errors.New("duplicate type")
)

// ParseError is returned when a candidate text is rejected. It unwraps to
// ErrMissingField or ErrTrailingText.
type ParseError struct {
	Kind   error
	Field  string
	Offset int
	Near   string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v %s at offset %d near %q", e.Kind, e.Field, e.Offset, e.Near)
	}
	return fmt.Sprintf("%v at offset %d: %q", e.Kind, e.Offset, e.Near)
}

func (e *ParseError) Unwrap() error { return e.Kind }

const excerptRunes = 24

func missing(field string, at grammar.Input) error {
	return &ParseError{Kind: ErrMissingField, Field: field, Offset: at.Pos(), Near: excerpt(at.Rest())}
}

func trailing(at grammar.Input) error {
	at = at.SkipSpace()
	return &ParseError{Kind: ErrTrailingText, Offset: at.Pos(), Near: excerpt(at.Rest())}
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == excerptRunes {
			return s[:i] + "…"
		}
		n++
	}
	return s
}
