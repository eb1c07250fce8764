package reader

import (
	"fmt"

	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

// Paragraphs returns the block-level paragraphs of every spine document in
// reading order.
func (f *EPUBFormat) Paragraphs(filename string) ([]string, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	var out []string

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", ref.Item.HREF, err)
		}
		pars, err := paragraphsFromHTML(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref.Item.HREF, err)
		}
		out = append(out, pars...)
	}

	return out, nil
}
