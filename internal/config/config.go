// Package config loads wordlist settings from a YAML file and the
// environment.
package config

import "path/filepath"

// Config is the root configuration.
type Config struct {
	Parse  ParseConfig  `yaml:"parse"`
	Refine RefineConfig `yaml:"refine"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// ParseConfig holds document segmentation settings.
type ParseConfig struct {
	SkipParagraphs  int `yaml:"skip_paragraphs"   env:"WORDLIST_SKIP_PARAGRAPHS"   env-default:"0"`
	Lookahead       int `yaml:"lookahead"         env:"WORDLIST_LOOKAHEAD"         env-default:"5"`
	MinSegmentRunes int `yaml:"min_segment_runes" env:"WORDLIST_MIN_SEGMENT_RUNES" env-default:"5"`
}

// RefineConfig holds refinement settings.
type RefineConfig struct {
	Workers int `yaml:"workers" env:"WORDLIST_REFINE_WORKERS" env-default:"1"`
}

// OutputConfig names the files a run writes. Relative names live under Dir.
type OutputConfig struct {
	Dir       string `yaml:"dir"        env:"WORDLIST_OUTPUT_DIR" env-default:"."`
	Document  string `yaml:"document"   env:"WORDLIST_DOCUMENT"   env-default:"wordlist.yml"`
	Refined   string `yaml:"refined"    env:"WORDLIST_REFINED"    env-default:"wordlist.refined.yml"`
	ReviewLog string `yaml:"review_log" env:"WORDLIST_REVIEW_LOG" env-default:"to_check.txt"`
	ErrorLog  string `yaml:"error_log"  env:"WORDLIST_ERROR_LOG"  env-default:"parser.log"`
}

// Path resolves an output file name against Dir.
func (o OutputConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDLIST_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDLIST_LOG_FORMAT" env-default:"text"`
}
