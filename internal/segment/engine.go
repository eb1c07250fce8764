// Package segment walks the paragraphs of a word list document and groups
// the entries it finds into numbered sections.
package segment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metcalfc/wordlist/internal/entry"
	"github.com/metcalfc/wordlist/internal/model"
)

// ErrUnrecoverable means no merge of a paragraph with its neighbours parsed.
var ErrUnrecoverable = errors.New("unrecoverable paragraph")

// DefaultLookahead is how many following paragraphs may be merged into a
// failing one.
const DefaultLookahead = 5

// BlockParser parses a block of text into zero or more entries.
type BlockParser interface {
	ParseBlock(text string) (entry.Result, error)
}

// Result is everything a document pass produced.
type Result struct {
	Sections []model.Section
	Review   []model.ReviewItem
	Failures []model.ParseFailure
}

// Engine is the segmentation state machine.
type Engine struct {
	parser    BlockParser
	lookahead int
	skip      int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLookahead bounds how many paragraphs a merge may absorb.
func WithLookahead(n int) Option {
	return func(e *Engine) { e.lookahead = n }
}

// WithSkip ignores the first n paragraphs (front matter).
func WithSkip(n int) Option {
	return func(e *Engine) { e.skip = n }
}

// New creates an Engine that parses blocks with p.
func New(p BlockParser, opts ...Option) *Engine {
	e := &Engine{parser: p, lookahead: DefaultLookahead}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type state int

const (
	expectHeader state = iota
	accumulate
	failed
)

// run is the mutable state of one document pass.
type run struct {
	*Engine
	pars    []string
	idx     int
	next    int // running section index
	lastErr error
	res     Result
	current *model.Section
}

// Run segments paragraphs into sections. It never fails: paragraphs that
// cannot be parsed are reported in Result.Failures and skipped.
func (e *Engine) Run(paragraphs []string) Result {
	r := &run{Engine: e, pars: paragraphs, idx: max(e.skip, 0), next: 1}

	st := expectHeader
	for r.idx < len(r.pars) {
		par := r.pars[r.idx]
		switch st {
		case expectHeader:
			if IsHeaderAttempt(par) {
				r.startSection(par)
				r.idx++
			}
			st = accumulate
		case accumulate:
			switch {
			case IsHeaderAttempt(par):
				st = expectHeader
			case strings.TrimSpace(par) == "":
				r.idx++
			case r.forward() || r.backtrack():
			default:
				st = failed
			}
		case failed:
			r.res.Failures = append(r.res.Failures, model.ParseFailure{
				Paragraph: r.idx,
				Text:      par,
				Reason:    fmt.Sprintf("%v: %v", ErrUnrecoverable, r.lastErr),
			})
			r.idx++
			st = accumulate
		}
	}
	r.flush()
	return r.res
}

func (r *run) startSection(par string) {
	r.flush()
	s := model.Section{Index: r.next}
	h, err := ParseHeader(par)
	if err != nil {
		r.res.Failures = append(r.res.Failures, model.ParseFailure{
			Paragraph: r.idx,
			Text:      par,
			Reason:    err.Error(),
		})
	} else {
		s = model.Section{Index: h.Number, Start: h.Start, End: h.End}
	}
	r.next = s.Index + 1
	r.current = &s
}

// flush moves the current section into the result. A preamble section
// (index 0) is kept only if it holds entries.
func (r *run) flush() {
	if r.current == nil {
		return
	}
	if r.current.Index != 0 || len(r.current.Entries) > 0 {
		r.res.Sections = append(r.res.Sections, *r.current)
	}
	r.current = nil
}

func (r *run) section() *model.Section {
	if r.current == nil {
		r.current = &model.Section{Index: 0}
	}
	return r.current
}

// merge parses text, appending up to lookahead paragraphs starting at next
// until a parse succeeds. Header paragraphs are never absorbed. It returns
// the index after the last consumed paragraph.
func (r *run) merge(text string, next int) (entry.Result, int, bool) {
	res, err := r.parser.ParseBlock(text)
	for n := 0; err != nil && n < r.lookahead && next < len(r.pars) && !IsHeaderAttempt(r.pars[next]); n++ {
		text += " " + r.pars[next]
		next++
		res, err = r.parser.ParseBlock(text)
	}
	if err != nil {
		r.lastErr = err
		return entry.Result{}, next, false
	}
	return res, next, true
}

func (r *run) forward() bool {
	res, next, ok := r.merge(r.pars[r.idx], r.idx+1)
	if !ok {
		return false
	}
	if len(res.Entries) > 0 {
		s := r.section()
		s.Entries = append(s.Entries, res.Entries...)
	}
	r.res.Review = append(r.res.Review, res.Review...)
	r.idx = next
	return true
}

// backtrack retries with the previous paragraph prepended. On success the
// new entries replace the last entry stored for the current section.
func (r *run) backtrack() bool {
	prev := r.idx - 1
	if prev < r.skip || prev < 0 || IsHeaderAttempt(r.pars[prev]) || strings.TrimSpace(r.pars[prev]) == "" {
		return false
	}
	res, next, ok := r.merge(r.pars[prev]+" "+r.pars[r.idx], r.idx+1)
	if !ok {
		return false
	}
	s := r.section()
	if n := len(s.Entries); n > 0 {
		s.Entries = s.Entries[:n-1]
	}
	s.Entries = append(s.Entries, res.Entries...)
	r.res.Review = append(r.res.Review, res.Review...)
	r.idx = next
	return true
}
