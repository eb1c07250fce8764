package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Parse.SkipParagraphs < 0 {
		return fmt.Errorf("parse.skip_paragraphs must be >= 0 (got %d)", c.Parse.SkipParagraphs)
	}
	if c.Parse.Lookahead < 1 {
		return fmt.Errorf("parse.lookahead must be >= 1 (got %d)", c.Parse.Lookahead)
	}
	if c.Parse.MinSegmentRunes < 1 {
		return fmt.Errorf("parse.min_segment_runes must be >= 1 (got %d)", c.Parse.MinSegmentRunes)
	}
	if c.Refine.Workers < 1 {
		return fmt.Errorf("refine.workers must be >= 1 (got %d)", c.Refine.Workers)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}
