package grammar

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/metcalfc/wordlist/internal/lexical"
	"github.com/metcalfc/wordlist/internal/model"
)

func word(kind lexical.WordKind) Parser[string] {
	return func(in Input) (string, Input, bool) {
		at := in.SkipSpace()
		n, k := lexical.Word(at.Rest())
		if k == lexical.NoWord || (kind != lexical.NoWord && k != kind) {
			return "", in, false
		}
		return at.Rest()[:n], at.Advance(n), true
	}
}

var (
	// Word matches a CJK, Latin or numeric word token.
	Word = word(lexical.NoWord)
	// LatinWord matches a run of Latin letters.
	LatinWord = word(lexical.LatinWord)
	// Number matches a run of digits as an int.
	Number = Map(word(lexical.Number), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
)

var period = Lit(".")

var partOfSpeech Parser[model.PartOfSpeech] = func(in Input) (model.PartOfSpeech, Input, bool) {
	at := in.SkipSpace()
	rest := at.Rest()
	for _, p := range model.PartsOfSpeech {
		abbr := p.Abbrev()
		if len(rest) < len(abbr) || !strings.EqualFold(rest[:len(abbr)], abbr) {
			continue
		}
		if _, next, ok := period(at.Advance(len(abbr))); ok {
			return p, next, true
		}
	}
	return "", in, false
}

// TypeList matches a comma separated list of part-of-speech tags, each
// followed by a period: "N., V.".
var TypeList = SepBy1(partOfSpeech, Lit(","))

// typeListAtWordStart is TypeList that refuses to start inside a Latin word,
// so "begin. V." is not read as "begi" tagged N.
var typeListAtWordStart Parser[[]model.PartOfSpeech] = func(in Input) ([]model.PartOfSpeech, Input, bool) {
	at := in.SkipSpace()
	if r, size := at.Prev(); size > 0 && lexical.IsLatinLetter(r) {
		return nil, in, false
	}
	return TypeList(at)
}

// Headword matches the shortest text in front of a type list. The type list
// itself is left unconsumed.
var Headword Parser[string] = func(in Input) (string, Input, bool) {
	text, next, ok := SkipTo(typeListAtWordStart, false, nil)(in)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "", in, false
	}
	return text, next, true
}

var cnPunct = Rune(func(r rune) bool {
	return lexical.IsPunct(r) && r != '，' && r != '/'
})

var cnFragment = Span(Many(Alt(Discard(Word), Discard(cnPunct))))

// ChineseDef matches "/片段，片段/" and yields the non-empty fragments.
var ChineseDef Parser[[]string] = func(in Input) ([]string, Input, bool) {
	_, cur, ok := Lit("/")(in)
	if !ok {
		return nil, in, false
	}
	frags, cur, ok := SepBy1(cnFragment, Lit("，"))(cur)
	if !ok {
		return nil, in, false
	}
	_, cur, ok = Lit("/")(cur)
	if !ok {
		return nil, in, false
	}
	return nonEmpty(frags), cur, true
}

// Quoted matches a span enclosed in straight or curly quotes. A straight
// single quote followed by "s" is an apostrophe, not an opener. Only the
// single quote span may cross a line break.
var Quoted Parser[string] = func(in Input) (string, Input, bool) {
	at := in.SkipSpace()
	open, size := at.Peek()
	if size == 0 || lexical.IsParenOpen(open) {
		return "", in, false
	}
	return enclosed(in, at, open, size)
}

// Paren matches a parenthetical span in half- or full-width parentheses.
var Paren Parser[string] = func(in Input) (string, Input, bool) {
	at := in.SkipSpace()
	open, size := at.Peek()
	if size == 0 || !lexical.IsParenOpen(open) {
		return "", in, false
	}
	return enclosed(in, at, open, size)
}

func enclosed(in, at Input, open rune, size int) (string, Input, bool) {
	closer, ok := lexical.SpanCloser(open)
	if !ok {
		return "", in, false
	}
	body := at.Advance(size)
	if r, _ := body.Peek(); open == '\'' && r == 's' {
		return "", in, false
	}
	rest := body.Rest()
	i := strings.IndexRune(rest, closer)
	if i < 0 {
		return "", in, false
	}
	if open != '\'' && strings.ContainsAny(rest[:i], "\r\n") {
		return "", in, false
	}
	end := body.Advance(i + utf8.RuneLen(closer))
	return at.Until(end), end, true
}

var enPunct = Rune(func(r rune) bool {
	return lexical.IsPunct(r) && !strings.ContainsRune(".?!;", r)
})

var enFragment = Span(Many(Alt(
	Discard(LatinWord),
	Discard(Whitespace()),
	Discard(Quoted),
	Discard(Paren),
	Discard(enPunct),
)))

// EnglishDef matches semicolon separated senses closed by a single period.
var EnglishDef Parser[[]string] = func(in Input) ([]string, Input, bool) {
	frags, cur, ok := SepBy1(enFragment, Lit(";"))(in)
	if !ok {
		return nil, in, false
	}
	_, cur, ok = period(cur)
	if !ok {
		return nil, in, false
	}
	return nonEmpty(frags), cur, true
}

var secondaryMeaning = Opt(Lit("(secondary meaning)"))

var synonym Parser[model.SynonymRef] = func(in Input) (model.SynonymRef, Input, bool) {
	_, cur, _ := secondaryMeaning(in)
	head, cur, ok := Span(Repeat(Word, 1, 2))(cur)
	if !ok {
		return model.SynonymRef{}, in, false
	}
	if _, cur, ok = Lit(",")(cur); !ok {
		return model.SynonymRef{}, in, false
	}
	types, cur, ok := TypeList(cur)
	if !ok {
		return model.SynonymRef{}, in, false
	}
	_, cur, _ = Opt(Lit(";"))(cur)
	_, cur, _ = secondaryMeaning(cur)
	return model.SynonymRef{Headword: head, Type: types}, cur, true
}

// Synonyms matches one or more "word, TYPE." groups, each optionally
// separated by ";" and marked "(secondary meaning)".
var Synonyms = Many1(synonym)

func keywordTypes(keyword string) Parser[[]model.PartOfSpeech] {
	kw := Lit(keyword)
	return func(in Input) ([]model.PartOfSpeech, Input, bool) {
		_, cur, ok := kw(in)
		if !ok {
			return nil, in, false
		}
		types, cur, ok := TypeList(cur)
		if !ok {
			return nil, in, false
		}
		return types, cur, true
	}
}

var (
	// Also matches "also TYPE.".
	Also = keywordTypes("also")
	// And matches "and TYPE.".
	And = keywordTypes("and")
)

var sentenceStop = Alt(
	Map(Rune(lexical.IsPunct), func(r rune) string { return string(r) }),
	Quoted,
	Paren,
)

var tailField = AnyOf(Matches(And), Matches(Also), Matches(Synonyms))

// ExampleSentence matches text up to and including punctuation, repeatedly,
// and gives up at the first position where synonyms or an also/and clause
// begin.
var ExampleSentence = Span(Many1(SkipTo(sentenceStop, true, tailField)))

// Tail is the example sentence and whatever trails it in an entry.
type Tail struct {
	ExampleSentence string
	Synonyms        []model.SynonymRef
	Also            []model.PartOfSpeech
	And             []model.PartOfSpeech
}

// Extensions returns the also and and tags in source order.
func (t Tail) Extensions() []model.PartOfSpeech {
	if len(t.Also) == 0 && len(t.And) == 0 {
		return nil
	}
	out := make([]model.PartOfSpeech, 0, len(t.Also)+len(t.And))
	out = append(out, t.Also...)
	return append(out, t.And...)
}

// TailFields matches an example sentence followed by optional synonyms, also
// clause and and clause. It does not require the input to end.
var TailFields Parser[Tail] = func(in Input) (Tail, Input, bool) {
	sentence, cur, ok := ExampleSentence(in)
	if !ok {
		return Tail{}, in, false
	}
	t := Tail{ExampleSentence: sentence}
	t.Synonyms, cur, _ = Opt(Synonyms)(cur)
	t.Also, cur, _ = Opt(Also)(cur)
	t.And, cur, _ = Opt(And)(cur)
	return t, cur, true
}

func nonEmpty(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
