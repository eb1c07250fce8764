package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadParagraphs(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("plain text", func(t *testing.T) {
		content := "Word List 1 abate-abject\r\n\r\nabate V. /减轻/ lessen. The storm abated.\n"
		path := filepath.Join(tmpDir, "test.txt")
		os.WriteFile(path, []byte(content), 0644)

		got, err := ReadParagraphs(path)
		if err != nil {
			t.Fatalf("ReadParagraphs: %v", err)
		}
		want := []string{"Word List 1 abate-abject", "", "abate V. /减轻/ lessen. The storm abated."}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "test.wordlist")
		os.WriteFile(path, []byte("one\ntwo"), 0644)

		got, err := ReadParagraphs(path)
		if err != nil {
			t.Fatalf("ReadParagraphs: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d paragraphs, want 2", len(got))
		}
	})

	t.Run("nfc", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nfc.txt")
		os.WriteFile(path, []byte("cafe\u0301"), 0644)

		got, err := ReadParagraphs(path)
		if err != nil {
			t.Fatalf("ReadParagraphs: %v", err)
		}
		if got[0] != "caf\u00e9" {
			t.Errorf("got %q, want composed form", got[0])
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := ReadParagraphs(filepath.Join(tmpDir, "nonexistent.txt"))
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"list.docx":  "Word",
		"LIST.EPUB":  "EPUB",
		"list.xhtml": "HTML",
		"list.md":    "Markdown",
	}
	for name, want := range tests {
		f, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q): not found", name)
			continue
		}
		if f.Name() != want {
			t.Errorf("Lookup(%q) = %s, want %s", name, f.Name(), want)
		}
	}
	if _, ok := Lookup("list.txt"); ok {
		t.Error("plain text should not be registered")
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) == 0 {
		t.Error("no formats registered")
	}
	for _, f := range formats {
		if f == "EPUB (.epub)" {
			return
		}
	}
	t.Errorf("EPUB not registered: %v", formats)
}

func TestLines(t *testing.T) {
	got, err := Lines(strings.NewReader("a\r\nb\n\nc"))
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{"a", "b", "", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
