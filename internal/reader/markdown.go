package reader

import (
	"os"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Paragraphs returns one paragraph per line with heading markers removed, so
// "## Word List 1 abate-abject" reads as a section header.
func (f *MarkdownFormat) Paragraphs(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pars, err := Lines(file)
	if err != nil {
		return nil, err
	}
	for i, line := range pars {
		if match := headerRegex.FindStringSubmatch(line); match != nil {
			pars[i] = strings.TrimSpace(match[2])
		}
	}
	return pars, nil
}
