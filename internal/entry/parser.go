// Package entry turns raw dictionary text into entries.
//
// A block of text may hold several entries run together. ParseBlock splits it
// at likely headword boundaries and parses every candidate with the full
// entry grammar; ParseTail re-reads a stored example sentence to recover the
// synonyms and also/and clauses that were left inside it.
package entry

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/metcalfc/wordlist/internal/grammar"
	"github.com/metcalfc/wordlist/internal/model"
)

// DefaultMinSegmentRunes is the shortest candidate segment worth parsing.
const DefaultMinSegmentRunes = 5

// Result holds the entries parsed from one block and the ones that need a
// human look.
type Result struct {
	Entries []model.Entry
	Review  []model.ReviewItem
}

// Parser parses raw blocks of dictionary text.
type Parser struct {
	minSegmentRunes int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMinSegmentRunes sets the length below which split segments are dropped
// as noise.
func WithMinSegmentRunes(n int) Option {
	return func(p *Parser) { p.minSegmentRunes = n }
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{minSegmentRunes: DefaultMinSegmentRunes}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseBlock splits text into candidate entries and parses each of them. The
// block fails as a whole if any candidate fails. A block made only of noise
// yields no entries and no error.
func (p *Parser) ParseBlock(text string) (Result, error) {
	var res Result
	for _, seg := range Split(text, p.minSegmentRunes) {
		e, err := Parse(strings.Trim(strings.TrimSpace(seg), "*"))
		if err != nil {
			return Result{}, err
		}
		res.Entries = append(res.Entries, e)
		res.Review = append(res.Review, Check(e)...)
	}
	return res, nil
}

// Parse reads exactly one entry:
//
//	headword TYPE. /中文，定义/ english; senses. Example sentence. [synonyms] [also TYPE.] [and TYPE.]
func Parse(text string) (model.Entry, error) {
	in := grammar.NewInput(text)

	headword, in, ok := grammar.Headword(in)
	if !ok {
		return model.Entry{}, missing("headword", in)
	}
	types, in, ok := grammar.TypeList(in)
	if !ok {
		return model.Entry{}, missing("type", in)
	}
	cn, in, ok := grammar.ChineseDef(in)
	if !ok {
		return model.Entry{}, missing("def.cn", in)
	}
	en, in, ok := grammar.EnglishDef(in)
	if !ok {
		return model.Entry{}, missing("def.en", in)
	}
	tail, in, ok := grammar.TailFields(in.SkipSpace())
	if !ok {
		return model.Entry{}, missing("example_sentence", in)
	}
	if _, _, ok := grammar.End()(in); !ok {
		return model.Entry{}, trailing(in)
	}

	return model.Entry{
		Headword:        headword,
		Type:            append(types, tail.Extensions()...),
		Def:             model.Definition{CN: cn, EN: en},
		ExampleSentence: tail.ExampleSentence,
		Synonyms:        tail.Synonyms,
	}, nil
}

// TailResult is what ParseTail recovers from an example sentence. Type holds
// the also/and tags in source order.
type TailResult struct {
	ExampleSentence string
	Synonyms        []model.SynonymRef
	Type            []model.PartOfSpeech
}

// ParseTail reads an example sentence optionally followed by synonyms and
// also/and clauses, and nothing else.
func ParseTail(text string) (TailResult, error) {
	tail, in, ok := grammar.TailFields(grammar.NewInput(text))
	if !ok {
		return TailResult{}, missing("example_sentence", in)
	}
	if _, _, ok := grammar.End()(in); !ok {
		return TailResult{}, trailing(in)
	}
	return TailResult{
		ExampleSentence: tail.ExampleSentence,
		Synonyms:        tail.Synonyms,
		Type:            tail.Extensions(),
	}, nil
}

// Check returns the review items for an entry that parsed but looks wrong.
func Check(e model.Entry) []model.ReviewItem {
	if e.HasDuplicateType() {
		return []model.ReviewItem{{Subject: e.Headword, Reason: ErrDuplicateType.Error()}}
	}
	return nil
}

var (
	boundaryAhead = regexp.MustCompile(`^[\p{L}\p{N}_]+\s*(?:ADJ|ADV|V|N|PREP)\.\s*/`)
	leadingWord   = regexp.MustCompile(`^[\p{L}\p{N}_]+`)
)

// Split cuts text right before each word that starts a new entry: a word
// preceded by sentence-final punctuation or a quote plus one space, and
// followed by a type tag and the opening slash of a Chinese definition, as in
// "...sentence. abate V. /". The boundary word must not itself be a type tag.
// Segments shorter than minRunes are dropped.
func Split(text string, minRunes int) []string {
	var segments []string
	start := 0
	for i, r := range text {
		if i == 0 || !isWordRune(r) || !atBoundary(text[:i]) {
			continue
		}
		rest := text[i:]
		if !boundaryAhead.MatchString(rest) || model.IsPartOfSpeech(leadingWord.FindString(rest)) {
			continue
		}
		segments = append(segments, text[start:i])
		start = i
	}
	segments = append(segments, text[start:])

	out := segments[:0]
	for _, s := range segments {
		if utf8.RuneCountInString(s) >= minRunes {
			out = append(out, s)
		}
	}
	return out
}

func atBoundary(before string) bool {
	space, size := utf8.DecodeLastRuneInString(before)
	if size == 0 || !unicode.IsSpace(space) {
		return false
	}
	mark, size := utf8.DecodeLastRuneInString(before[:len(before)-size])
	return size > 0 && strings.ContainsRune(`.?!"'`, mark)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
