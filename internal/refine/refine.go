// Package refine runs a second pass over extracted entries. It recovers the
// synonyms and also/and tags that the first pass left inside example
// sentences, and splits definitions into one sense per item.
package refine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/metcalfc/wordlist/internal/entry"
	"github.com/metcalfc/wordlist/internal/model"
)

// ErrEmptyDefinition means an entry has neither a Chinese nor an English
// definition left after splitting.
var ErrEmptyDefinition = errors.New("empty definition")

// Stage names the half of the refinement that failed.
type Stage string

const (
	StageTail       Stage = "tail"
	StageDefinition Stage = "definition"
)

// Failure is a refinement error for one entry. The entry keeps that half
// unmodified.
type Failure struct {
	Section  int
	Headword string
	Stage    Stage
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("section %d: %s: %s: %v", f.Section, f.Headword, f.Stage, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Result is the refined document plus its side channels.
type Result struct {
	Sections []model.Section
	Review   []model.ReviewItem
	Failures []Failure
}

// Refiner refines documents, optionally in parallel.
type Refiner struct {
	workers int
}

// Option configures a Refiner.
type Option func(*Refiner)

// WithWorkers sets how many entries are refined at once.
func WithWorkers(n int) Option {
	return func(r *Refiner) { r.workers = n }
}

// New creates a Refiner. It is sequential unless WithWorkers says otherwise.
func New(opts ...Option) *Refiner {
	r := &Refiner{workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r
}

type outcome struct {
	entry    model.Entry
	review   []model.ReviewItem
	failures []Failure
}

// Refine returns refined copies of sections. The input is not modified, and
// output order matches input order regardless of the worker count.
func (r *Refiner) Refine(sections []model.Section) Result {
	slots := make([][]outcome, len(sections))
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, s := range sections {
		slots[i] = make([]outcome, len(s.Entries))
		for j, e := range s.Entries {
			i, j, s, e := i, j, s, e
			g.Go(func() error {
				slots[i][j] = refineEntry(s.Index, e)
				return nil
			})
		}
	}
	_ = g.Wait()

	res := Result{Sections: make([]model.Section, len(sections))}
	for i, s := range sections {
		out := s
		if len(slots[i]) > 0 {
			out.Entries = make([]model.Entry, len(slots[i]))
		}
		for j, o := range slots[i] {
			out.Entries[j] = o.entry
			res.Review = append(res.Review, o.review...)
			res.Failures = append(res.Failures, o.failures...)
		}
		res.Sections[i] = out
	}
	return res
}

func refineEntry(section int, in model.Entry) outcome {
	o := outcome{entry: in.Clone()}
	e := &o.entry

	fail := func(stage Stage, err error) {
		o.failures = append(o.failures, Failure{Section: section, Headword: in.Headword, Stage: stage, Err: err})
	}

	if tail, err := entry.ParseTail(e.ExampleSentence); err != nil {
		fail(StageTail, err)
	} else {
		e.ExampleSentence = collapse(tail.ExampleSentence)
		e.Type = append(e.Type, tail.Type...)
		e.Synonyms = append(e.Synonyms, tail.Synonyms...)
		o.review = entry.Check(*e)
	}

	cn, en := splitSenses(e.Def.CN), splitSenses(e.Def.EN)
	if len(cn) == 0 && len(en) == 0 {
		fail(StageDefinition, ErrEmptyDefinition)
	} else {
		e.Def = model.Definition{CN: cn, EN: en}
	}
	return o
}

var (
	senseSep = regexp.MustCompile(`\s*[;；]\s*`)
	spaces   = regexp.MustCompile(`\s+`)
)

func splitSenses(defs []string) []string {
	var out []string
	for _, d := range defs {
		for _, s := range senseSep.Split(d, -1) {
			if s = collapse(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func collapse(s string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(s), " ")
}
