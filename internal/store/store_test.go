package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/metcalfc/wordlist/internal/model"
)

func sampleDocument() []model.Section {
	return []model.Section{
		{
			Index: 1,
			Start: "abandon",
			End:   "abject",
			Entries: []model.Entry{
				{
					Headword:        "abandon",
					Type:            []model.PartOfSpeech{model.Verb, model.Noun},
					Def:             model.Definition{CN: []string{"放弃", "抛弃"}, EN: []string{"give up", "relinquish"}},
					ExampleSentence: "He decided to abandon the project.",
					Synonyms: []model.SynonymRef{
						{Headword: "desert", Type: []model.PartOfSpeech{model.Verb}},
						{Headword: "give in", Type: []model.PartOfSpeech{model.Verb, model.Noun}},
					},
				},
				{
					Headword:        "abject",
					Type:            []model.PartOfSpeech{model.Adjective},
					Def:             model.Definition{CN: []string{"悲惨的"}},
					ExampleSentence: "She was abject.",
				},
			},
		},
		{Index: 2},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "wordlist.yml")
	want := sampleDocument()

	if err := SaveDocument(path, want); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	got, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatted.yml")
	legacy := `- index: 1
  start: abandon
  end: abject
  vocabs:
    - vocab: abandon
      type: [V]
      chinese_def: 放弃；抛弃
      english_def: give up; relinquish
      example_sentence: He left. desert, V.
`
	os.WriteFile(path, []byte(legacy), 0644)

	got, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if len(got) != 1 || len(got[0].Entries) != 1 {
		t.Fatalf("unexpected document: %+v", got)
	}
	e := got[0].Entries[0]
	if e.Headword != "abandon" || e.Def.CN[0] != "放弃；抛弃" || e.Def.EN[0] != "give up; relinquish" {
		t.Errorf("legacy keys not mapped: %+v", e)
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDocument(filepath.Join(dir, "missing.yml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yml")
	os.WriteFile(bad, []byte("- index: 1\n  entries:\n    - headword: x\n      type: [NOUN]\n"), 0644)
	if _, err := LoadDocument(bad); err == nil {
		t.Error("expected error for unknown part of speech")
	}
}

func TestReviewLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "to_check.txt")

	for _, item := range []model.ReviewItem{
		{Subject: "abandon", Reason: "duplicate type"},
		{Subject: "abject", Reason: "duplicate type"},
	} {
		l, err := OpenReviewLog(path)
		if err != nil {
			t.Fatalf("OpenReviewLog failed: %v", err)
		}
		if err := l.Append(item); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		l.Close()
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	want := []string{"abandon duplicate type", "abject duplicate type"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %q, want %q", lines, want)
	}
}

func TestErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parser.log")
	l, err := OpenErrorLog(path)
	if err != nil {
		t.Fatalf("OpenErrorLog failed: %v", err)
	}
	l.ParseFailures([]model.ParseFailure{{Paragraph: 42, Text: "garbage", Reason: "unrecoverable paragraph"}})
	l.RefineFailure(3, "abate", "tail", errors.New("missing mandatory field"))
	l.Close()

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	for _, want := range []string{"level=ERROR", "paragraph=42", `reason="unrecoverable paragraph"`, "text=garbage"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	for _, want := range []string{"section=3", "headword=abate", "stage=tail"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("line %q missing %q", lines[1], want)
		}
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	lines, err := ReadLines(filepath.Join(t.TempDir(), "none.txt"))
	if err != nil || lines != nil {
		t.Errorf("got %q, %v; want nil, nil", lines, err)
	}
}

func TestFingerprint(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "test1.txt")
	file2 := filepath.Join(tmpDir, "test2.txt")
	file3 := filepath.Join(tmpDir, "test1_copy.txt")

	os.WriteFile(file1, []byte("Word List 1 abate-abject"), 0644)
	os.WriteFile(file2, []byte("Word List 2 abash-abate"), 0644)
	os.WriteFile(file3, []byte("Word List 1 abate-abject"), 0644)

	hash1, err := Fingerprint(file1)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	hash2, _ := Fingerprint(file2)
	hash3, _ := Fingerprint(file3)

	if hash1 != hash3 {
		t.Errorf("Same content should produce same hash: %s != %s", hash1, hash3)
	}
	if hash1 == hash2 {
		t.Errorf("Different content should produce different hash")
	}
	if len(hash1) != 32 {
		t.Errorf("Hash should be 32 chars, got %d", len(hash1))
	}
}
