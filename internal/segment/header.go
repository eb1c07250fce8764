package segment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metcalfc/wordlist/internal/grammar"
)

// HeaderPrefix starts every section header paragraph.
const HeaderPrefix = "Word List"

// ErrSectionHeader means a paragraph looked like a section header but did not
// match "Word List <n> <start>-<end>".
var ErrSectionHeader = errors.New("section header mismatch")

// Header is a parsed section header.
type Header struct {
	Number int
	Start  string
	End    string
}

// IsHeaderAttempt reports whether a paragraph should be treated as a section
// header, whether or not it parses.
func IsHeaderAttempt(paragraph string) bool {
	return strings.HasPrefix(strings.TrimSpace(paragraph), HeaderPrefix)
}

var (
	headerLit = grammar.Lit(HeaderPrefix)
	rangeSep  = grammar.Alt(grammar.Lit("-"), grammar.Lit("–"))
)

// ParseHeader parses "Word List 3 abate-abject". Text after the end word is
// ignored.
func ParseHeader(paragraph string) (Header, error) {
	in := grammar.NewInput(paragraph)
	fail := func(field string) (Header, error) {
		return Header{}, fmt.Errorf("%w: no %s in %q", ErrSectionHeader, field, strings.TrimSpace(paragraph))
	}

	_, in, ok := headerLit(in)
	if !ok {
		return fail("prefix")
	}
	n, in, ok := grammar.Number(in)
	if !ok {
		return fail("number")
	}
	start, in, ok := grammar.LatinWord(in)
	if !ok {
		return fail("start word")
	}
	if _, in, ok = rangeSep(in); !ok {
		return fail("range separator")
	}
	end, _, ok := grammar.LatinWord(in)
	if !ok {
		return fail("end word")
	}
	return Header{Number: n, Start: start, End: end}, nil
}
