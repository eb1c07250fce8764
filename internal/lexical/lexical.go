// Package lexical classifies the runes of mixed Chinese/Latin dictionary text.
package lexical

import (
	"strings"
	"unicode/utf8"
)

// cjkPunctuation is the full-width and typographic punctuation found in scanned
// bilingual dictionaries. It overlaps the ASCII set for a few marks.
const cjkPunctuation = "（）＊＋，－／：＜＝＞＠［＼］＾＿｀｛｜｝～｟｠｢｣､　、〃〈〉《》「」『』【】〔〕〖" +
	"〗〘〙〚〛〜〝〞〟〰〾〿–—‘’‛“”„‟…‧﹏﹑﹔·[」﹂”』’》）］｝〕〗〙〛〉】。！？｡!?.．︀；" +
	";\"'”’"

const latinPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

const terminalPunctuation = ".?!。？！"

// Ideograph range of the CJK Unified Ideographs block.
const (
	ideographFirst = 0x4E00
	ideographLast  = 0x9FFF
)

var spanClosers = map[rune]rune{
	'\'': '\'',
	'"':  '"',
	'“':  '”',
	'‘':  '’',
	'(':  ')',
	'（':  '）',
}

// IsIdeograph reports whether r is a CJK unified ideograph.
func IsIdeograph(r rune) bool {
	return r >= ideographFirst && r <= ideographLast
}

// IsCJKPunct reports whether r belongs to the full-width punctuation set.
func IsCJKPunct(r rune) bool {
	return strings.ContainsRune(cjkPunctuation, r)
}

// IsLatinPunct reports whether r is ASCII punctuation.
func IsLatinPunct(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune(latinPunctuation, r)
}

// IsPunct reports whether r is CJK or Latin punctuation.
func IsPunct(r rune) bool {
	return IsCJKPunct(r) || IsLatinPunct(r)
}

// IsTerminal reports whether r ends a sentence in either script.
func IsTerminal(r rune) bool {
	return strings.ContainsRune(terminalPunctuation, r)
}

// IsLatinLetter reports whether r is an ASCII or Latin-1 supplement letter.
func IsLatinLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= 0xC0 && r <= 0xFF:
		return r != 0xD7 && r != 0xF7
	}
	return false
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsSpace reports whether r is token-separating whitespace.
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// SpanCloser returns the rune that closes a quote or parenthesis opened by r.
func SpanCloser(open rune) (rune, bool) {
	c, ok := spanClosers[open]
	return c, ok
}

// IsParenOpen reports whether r opens a parenthetical span.
func IsParenOpen(r rune) bool {
	return r == '(' || r == '（'
}

// WordKind identifies the class of a word token.
type WordKind int

const (
	NoWord WordKind = iota
	CJKWord
	LatinWord
	Number
)

func (k WordKind) String() string {
	switch k {
	case CJKWord:
		return "cjk"
	case LatinWord:
		return "latin"
	case Number:
		return "number"
	}
	return "none"
}

// Word measures the word token at the start of s and returns its length in
// bytes. Ideographs separated only by whitespace combine into one token;
// trailing whitespace is never part of the token.
func Word(s string) (int, WordKind) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case size == 0:
		return 0, NoWord
	case IsIdeograph(r):
		return cjkRun(s), CJKWord
	case IsLatinLetter(r):
		return run(s, IsLatinLetter), LatinWord
	case IsDigit(r):
		return run(s, IsDigit), Number
	}
	return 0, NoWord
}

func run(s string, pred func(rune) bool) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !pred(r) {
			break
		}
		n += size
	}
	return n
}

func cjkRun(s string) int {
	end := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case IsIdeograph(r):
			i += size
			end = i
		case IsSpace(r):
			i += size
		default:
			return end
		}
	}
	return end
}
