package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metcalfc/wordlist/internal/config"
	"github.com/metcalfc/wordlist/internal/store"
)

const sampleList = `Word List 1 abandon-abject
abandon V. /放弃；抛弃/ give up. He left. desert, V. also V.
garbage without structure
Word List 2 abash-abate
abate V. /减轻/ lessen.
The storm abated.
`

// outputEnv points every output file at a fresh temp dir.
func outputEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WORDLIST_CONFIG", "")
	t.Setenv("WORDLIST_OUTPUT_DIR", dir)
	return dir
}

func TestRunParseAndRefine(t *testing.T) {
	dir := outputEnv(t)
	src := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(src, []byte(sampleList), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"parse", src}, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Parsed "+src) {
		t.Errorf("summary missing: %q", stdout.String())
	}

	sections, err := store.LoadDocument(filepath.Join(dir, "wordlist.yml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if len(sections) != 2 || len(sections[0].Entries) != 1 || len(sections[1].Entries) != 1 {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if sections[1].Start != "abash" || sections[1].Entries[0].ExampleSentence != "The storm abated." {
		t.Errorf("unexpected second section: %+v", sections[1])
	}

	review, _ := store.ReadLines(filepath.Join(dir, "to_check.txt"))
	if len(review) != 1 || review[0] != "abandon duplicate type" {
		t.Errorf("review log = %q", review)
	}
	errLog, _ := store.ReadLines(filepath.Join(dir, "parser.log"))
	if !strings.Contains(strings.Join(errLog, "\n"), "paragraph=2") {
		t.Errorf("error log missing failure: %q", errLog)
	}

	stdout.Reset()
	if err := run([]string{"refine"}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("refine: %v\n%s", err, stderr.String())
	}
	refined, err := store.LoadDocument(filepath.Join(dir, "wordlist.refined.yml"))
	if err != nil {
		t.Fatalf("LoadDocument refined: %v", err)
	}
	cn := refined[0].Entries[0].Def.CN
	if len(cn) != 2 || cn[0] != "放弃" || cn[1] != "抛弃" {
		t.Errorf("definitions not split: %q", cn)
	}
}

func TestRunParseStdin(t *testing.T) {
	dir := outputEnv(t)
	out := filepath.Join(dir, "stdin.yml")

	var stdout, stderr bytes.Buffer
	err := run([]string{"parse", "-o", out}, strings.NewReader(sampleList), &stdout, &stderr)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
	if !strings.Contains(stdout.String(), "Parsed stdin") {
		t.Errorf("summary missing: %q", stdout.String())
	}
}

func TestRunParseMissingFile(t *testing.T) {
	outputEnv(t)
	var stdout, stderr bytes.Buffer
	err := run([]string{"parse", "/nonexistent/list.docx"}, nil, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPrintClip(t *testing.T) {
	outputEnv(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	text := "abate V. /减轻/ lessen. The storm abated. abandon V. /放弃/ give up. He left. also V."
	if err := printClip(text, cfg, &stdout, &stderr); err != nil {
		t.Fatalf("printClip: %v", err)
	}
	if got := strings.Count(stdout.String(), "headword:"); got != 2 {
		t.Errorf("expected 2 entries, got %d:\n%s", got, stdout.String())
	}
	if !strings.Contains(stderr.String(), "abandon duplicate type") {
		t.Errorf("review item not reported: %q", stderr.String())
	}

	if err := printClip("   ", cfg, &stdout, &stderr); err == nil {
		t.Error("expected error for empty clipboard")
	}
}

func TestRunClipReadsClipboard(t *testing.T) {
	outputEnv(t)
	defer func(f func() (string, error)) { readClipboard = f }(readClipboard)
	readClipboard = func() (string, error) { return "", errors.New("no clipboard") }

	var stdout, stderr bytes.Buffer
	err := run([]string{"clip"}, nil, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "no clipboard") {
		t.Errorf("run clip = %v", err)
	}
}

func TestRunFormats(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"formats"}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"EPUB (.epub)", "Word (.docx)", "Markdown (.md, .markdown)"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("formats output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunVersionAndUnknown(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"version"}, nil, &stdout, &stderr); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "wordlist dev") {
		t.Errorf("version output = %q", stdout.String())
	}

	if err := run([]string{"bogus"}, nil, &stdout, &stderr); err == nil {
		t.Error("expected error for unknown command")
	}
	if err := run(nil, nil, &stdout, &stderr); err == nil {
		t.Error("expected error for no command")
	}
}
