package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML canonicalises the tag and rejects unknown values.
func (p *PartOfSpeech) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, ok := ParsePartOfSpeech(s)
	if !ok {
		return fmt.Errorf("line %d: unknown part of speech %q", value.Line, s)
	}
	*p = v
	return nil
}

// stringList decodes either a scalar or a sequence of scalars. Documents
// written before refinement store definitions as a single string.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = ss
		return nil
	}
	return fmt.Errorf("line %d: expected string or list of strings", value.Line)
}

type definitionRecord struct {
	CN stringList `yaml:"cn"`
	EN stringList `yaml:"en"`
}

type entryRecord struct {
	Headword        string            `yaml:"headword"`
	Vocab           string            `yaml:"vocab"`
	Type            []PartOfSpeech    `yaml:"type"`
	Def             *definitionRecord `yaml:"def"`
	ChineseDef      stringList        `yaml:"chinese_def"`
	EnglishDef      stringList        `yaml:"english_def"`
	ExampleSentence string            `yaml:"example_sentence"`
	Synonyms        []SynonymRef      `yaml:"synonyms"`
}

// UnmarshalYAML reads an entry, accepting the pre-refinement keys vocab,
// chinese_def and english_def alongside the current layout.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	var rec entryRecord
	if err := value.Decode(&rec); err != nil {
		return err
	}
	out := Entry{
		Headword:        rec.Headword,
		Type:            nilIfEmpty(rec.Type),
		ExampleSentence: rec.ExampleSentence,
		Synonyms:        nilIfEmpty(rec.Synonyms),
	}
	if out.Headword == "" {
		out.Headword = rec.Vocab
	}
	if rec.Def != nil {
		out.Def.CN = nilIfEmpty([]string(rec.Def.CN))
		out.Def.EN = nilIfEmpty([]string(rec.Def.EN))
	}
	if out.Def.CN == nil {
		out.Def.CN = nilIfEmpty([]string(rec.ChineseDef))
	}
	if out.Def.EN == nil {
		out.Def.EN = nilIfEmpty([]string(rec.EnglishDef))
	}
	*e = out
	return nil
}

// UnmarshalYAML accepts vocab as an alias of headword.
func (s *SynonymRef) UnmarshalYAML(value *yaml.Node) error {
	var rec struct {
		Headword string         `yaml:"headword"`
		Vocab    string         `yaml:"vocab"`
		Type     []PartOfSpeech `yaml:"type"`
	}
	if err := value.Decode(&rec); err != nil {
		return err
	}
	s.Headword = rec.Headword
	if s.Headword == "" {
		s.Headword = rec.Vocab
	}
	s.Type = nilIfEmpty(rec.Type)
	return nil
}

// UnmarshalYAML accepts vocabs as an alias of entries.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	var rec struct {
		Index   int     `yaml:"index"`
		Start   string  `yaml:"start"`
		End     string  `yaml:"end"`
		Entries []Entry `yaml:"entries"`
		Vocabs  []Entry `yaml:"vocabs"`
	}
	if err := value.Decode(&rec); err != nil {
		return err
	}
	s.Index, s.Start, s.End = rec.Index, rec.Start, rec.End
	s.Entries = nilIfEmpty(rec.Entries)
	if s.Entries == nil {
		s.Entries = nilIfEmpty(rec.Vocabs)
	}
	return nil
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
