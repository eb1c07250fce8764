// Package grammar provides small parser combinators over raw text and the
// field grammars of a bilingual dictionary entry built from them.
//
// A Parser is a pure function from an Input cursor to a value and the cursor
// after the match. Terminal parsers skip leading whitespace; composite parsers
// do not, so whitespace between tokens is never significant unless a grammar
// asks for it with Whitespace.
package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/metcalfc/wordlist/internal/lexical"
)

// Input is an immutable cursor into source text.
type Input struct {
	src string
	pos int
}

// NewInput returns a cursor at the start of s.
func NewInput(s string) Input { return Input{src: s} }

// Pos returns the byte offset of the cursor.
func (in Input) Pos() int { return in.pos }

// Rest returns the unconsumed text.
func (in Input) Rest() string { return in.src[in.pos:] }

// AtEnd reports whether all input has been consumed.
func (in Input) AtEnd() bool { return in.pos >= len(in.src) }

// Advance moves the cursor n bytes forward.
func (in Input) Advance(n int) Input {
	in.pos += n
	if in.pos > len(in.src) {
		in.pos = len(in.src)
	}
	return in
}

// Peek decodes the rune under the cursor. size is 0 at end of input.
func (in Input) Peek() (r rune, size int) {
	return utf8.DecodeRuneInString(in.src[in.pos:])
}

// Prev decodes the rune just before the cursor. size is 0 at the start.
func (in Input) Prev() (r rune, size int) {
	return utf8.DecodeLastRuneInString(in.src[:in.pos])
}

// SkipSpace moves past any whitespace under the cursor.
func (in Input) SkipSpace() Input {
	for {
		r, size := in.Peek()
		if size == 0 || !lexical.IsSpace(r) {
			return in
		}
		in.pos += size
	}
}

// Until returns the source text between in and end.
func (in Input) Until(end Input) string {
	if end.pos < in.pos {
		return ""
	}
	return in.src[in.pos:end.pos]
}

// Parser recognises a prefix of its input.
type Parser[T any] func(in Input) (T, Input, bool)

// Predicate reports whether something can be recognised at in.
type Predicate func(in Input) bool

// Matches turns p into a lookahead predicate.
func Matches[T any](p Parser[T]) Predicate {
	return func(in Input) bool {
		_, _, ok := p(in)
		return ok
	}
}

// AnyOf is satisfied when one of preds is.
func AnyOf(preds ...Predicate) Predicate {
	return func(in Input) bool {
		for _, p := range preds {
			if p(in) {
				return true
			}
		}
		return false
	}
}

// Lit matches s exactly after optional whitespace.
func Lit(s string) Parser[string] {
	return func(in Input) (string, Input, bool) {
		at := in.SkipSpace()
		if !strings.HasPrefix(at.Rest(), s) {
			return "", in, false
		}
		return s, at.Advance(len(s)), true
	}
}

// Rune matches one rune satisfying pred after optional whitespace.
func Rune(pred func(rune) bool) Parser[rune] {
	return func(in Input) (rune, Input, bool) {
		at := in.SkipSpace()
		r, size := at.Peek()
		if size == 0 || !pred(r) {
			return 0, in, false
		}
		return r, at.Advance(size), true
	}
}

// Whitespace matches one or more whitespace runes without skipping anything
// first.
func Whitespace() Parser[string] {
	return func(in Input) (string, Input, bool) {
		end := in.SkipSpace()
		if end.pos == in.pos {
			return "", in, false
		}
		return in.Until(end), end, true
	}
}

// End matches the end of input after optional trailing whitespace.
func End() Parser[struct{}] {
	return func(in Input) (struct{}, Input, bool) {
		at := in.SkipSpace()
		if !at.AtEnd() {
			return struct{}{}, in, false
		}
		return struct{}{}, at, true
	}
}

// Map transforms the value of a successful match.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (B, Input, bool) {
		a, next, ok := p(in)
		if !ok {
			var zero B
			return zero, in, false
		}
		return f(a), next, true
	}
}

// Opt never fails: it yields the zero value and consumes nothing when p does
// not match.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		v, next, ok := p(in)
		if !ok {
			var zero T
			return zero, in, true
		}
		return v, next, true
	}
}

// Alt returns the first alternative that matches.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		for _, p := range ps {
			if v, next, ok := p(in); ok {
				return v, next, true
			}
		}
		var zero T
		return zero, in, false
	}
}

// Seq matches every parser in order.
func Seq[T any](ps ...Parser[T]) Parser[[]T] {
	return func(in Input) ([]T, Input, bool) {
		out := make([]T, 0, len(ps))
		cur := in
		for _, p := range ps {
			v, next, ok := p(cur)
			if !ok {
				return nil, in, false
			}
			out = append(out, v)
			cur = next
		}
		return out, cur, true
	}
}

// Repeat matches p greedily between min and max times. max < 0 means no upper
// bound. Repetition stops when p matches without consuming input.
func Repeat[T any](p Parser[T], min, max int) Parser[[]T] {
	return func(in Input) ([]T, Input, bool) {
		var out []T
		cur := in
		for max < 0 || len(out) < max {
			v, next, ok := p(cur)
			if !ok || next.pos == cur.pos {
				break
			}
			out = append(out, v)
			cur = next
		}
		if len(out) < min {
			return nil, in, false
		}
		return out, cur, true
	}
}

// Many matches p zero or more times.
func Many[T any](p Parser[T]) Parser[[]T] { return Repeat(p, 0, -1) }

// Many1 matches p one or more times.
func Many1[T any](p Parser[T]) Parser[[]T] { return Repeat(p, 1, -1) }

// SepBy1 matches one or more p separated by sep. A separator is only consumed
// when another p follows it.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(in Input) ([]T, Input, bool) {
		v, cur, ok := p(in)
		if !ok {
			return nil, in, false
		}
		out := []T{v}
		for {
			_, afterSep, ok := sep(cur)
			if !ok {
				break
			}
			v, next, ok := p(afterSep)
			if !ok {
				break
			}
			out = append(out, v)
			cur = next
		}
		return out, cur, true
	}
}

// Span runs p and yields the source text it covered, without the whitespace
// before or after it.
func Span[T any](p Parser[T]) Parser[string] {
	return func(in Input) (string, Input, bool) {
		_, next, ok := p(in)
		if !ok {
			return "", in, false
		}
		start := in.SkipSpace()
		return strings.TrimRightFunc(start.Until(next), lexical.IsSpace), next, true
	}
}

// Discard runs p and drops its value.
func Discard[T any](p Parser[T]) Parser[struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}

// SkipTo scans forward one rune at a time, after optional whitespace, until
// target matches. It yields the text skipped over. With include the target
// is consumed as well and included in the text. The scan fails as soon as
// failOn is satisfied at the current position, or at end of input.
func SkipTo[T any](target Parser[T], include bool, failOn Predicate) Parser[string] {
	return func(in Input) (string, Input, bool) {
		start := in.SkipSpace()
		for at := start; ; {
			if failOn != nil && failOn(at) {
				return "", in, false
			}
			if _, next, ok := target(at); ok {
				if include {
					return start.Until(next), next, true
				}
				return start.Until(at), at, true
			}
			_, size := at.Peek()
			if size == 0 {
				return "", in, false
			}
			at = at.Advance(size)
		}
	}
}
