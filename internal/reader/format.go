// Package reader turns source documents into the ordered paragraph stream the
// segmentation engine consumes.
package reader

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Format defines a file format reader for extracting paragraphs.
type Format interface {
	Name() string
	Extensions() []string
	Paragraphs(filename string) ([]string, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Lookup returns the registered format for a file name's extension.
func Lookup(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f, true
			}
		}
	}
	return nil, false
}

// ReadParagraphs extracts paragraphs from a file, using a registered format
// or one paragraph per line as fallback. Blank paragraphs are kept so that
// indices match the source.
func ReadParagraphs(filename string) ([]string, error) {
	if f, ok := Lookup(filename); ok {
		pars, err := f.Paragraphs(filename)
		if err != nil {
			return nil, err
		}
		return normalize(pars), nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Lines(file)
}

// Lines reads one paragraph per line.
func Lines(r io.Reader) ([]string, error) {
	var pars []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		pars = append(pars, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return normalize(pars), nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

func normalize(pars []string) []string {
	for i, p := range pars {
		pars[i] = norm.NFC.String(strings.TrimRight(p, "\r"))
	}
	return pars
}
