// Package model defines the dictionary document: sections of entries with
// bilingual definitions, plus the review and failure records produced while
// extracting them.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// PartOfSpeech is a part-of-speech tag stored by its canonical abbreviation.
type PartOfSpeech string

const (
	Noun        PartOfSpeech = "N"
	Verb        PartOfSpeech = "V"
	Adjective   PartOfSpeech = "ADJ"
	Adverb      PartOfSpeech = "ADV"
	Preposition PartOfSpeech = "PREP"
)

// PartsOfSpeech lists every tag, longest abbreviation first so that prefix
// matching never stops at a shorter tag.
var PartsOfSpeech = []PartOfSpeech{Preposition, Adjective, Adverb, Noun, Verb}

var partNames = map[PartOfSpeech]string{
	Noun:        "noun",
	Verb:        "verb",
	Adjective:   "adjective",
	Adverb:      "adverb",
	Preposition: "preposition",
}

// ParsePartOfSpeech resolves an abbreviation case-insensitively. A trailing
// period is accepted.
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	for _, p := range PartsOfSpeech {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// IsPartOfSpeech reports whether s is exactly one of the canonical tags.
func IsPartOfSpeech(s string) bool {
	_, ok := partNames[PartOfSpeech(s)]
	return ok
}

// Abbrev returns the canonical abbreviation without the period.
func (p PartOfSpeech) Abbrev() string { return string(p) }

// Name returns the long English name of the tag.
func (p PartOfSpeech) Name() string { return partNames[p] }

// HasDuplicate reports whether tags repeats any tag.
func HasDuplicate(tags []PartOfSpeech) bool {
	seen := make(map[PartOfSpeech]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			return true
		}
		seen[t] = true
	}
	return false
}

// Definition holds the Chinese and English senses of an entry in source order.
type Definition struct {
	CN []string `yaml:"cn"`
	EN []string `yaml:"en"`
}

// SynonymRef is a related headword that shares the entry's definitions.
type SynonymRef struct {
	Headword string         `yaml:"headword"`
	Type     []PartOfSpeech `yaml:"type"`
}

// Entry is one dictionary record.
type Entry struct {
	Headword        string         `yaml:"headword"`
	Type            []PartOfSpeech `yaml:"type"`
	Def             Definition     `yaml:"def"`
	ExampleSentence string         `yaml:"example_sentence"`
	Synonyms        []SynonymRef   `yaml:"synonyms,omitempty"`
}

// HasDuplicateType reports whether the entry lists a part of speech twice.
func (e Entry) HasDuplicateType() bool {
	return HasDuplicate(e.Type)
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	c := e
	c.Type = slices.Clone(e.Type)
	c.Def.CN = slices.Clone(e.Def.CN)
	c.Def.EN = slices.Clone(e.Def.EN)
	if e.Synonyms != nil {
		c.Synonyms = make([]SynonymRef, len(e.Synonyms))
		for i, s := range e.Synonyms {
			c.Synonyms[i] = SynonymRef{Headword: s.Headword, Type: slices.Clone(s.Type)}
		}
	}
	return c
}

// Section is a numbered word list and the entries found under it.
type Section struct {
	Index   int     `yaml:"index"`
	Start   string  `yaml:"start,omitempty"`
	End     string  `yaml:"end,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// ReviewItem flags an extracted record that needs a human look. It is never
// part of the persisted document.
type ReviewItem struct {
	Subject string
	Reason  string
}

func (r ReviewItem) String() string {
	return r.Subject + " " + r.Reason
}

// ParseFailure records a paragraph the segmentation engine gave up on.
type ParseFailure struct {
	Paragraph int
	Text      string
	Reason    string
}

func (f ParseFailure) String() string {
	return fmt.Sprintf("paragraph %d: %s", f.Paragraph, f.Reason)
}
