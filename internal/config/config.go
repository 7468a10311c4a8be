// Package config loads per-project scour configuration from a .scour.kdl
// file at the search root. Every field has a default, so a missing config
// file is never an error.
package config

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Search holds the knobs for one search invocation. Command-line flags
// override whatever the config file set.
type Search struct {
	MaxResults   int      `toml:"max_results"`
	ContextLines int      `toml:"context_lines"`
	MaxFileKB    int      `toml:"max_file_kb"`
	TypeFilter   string   `toml:"type_filter"`
	Exclude      []string `toml:"exclude"`
	Include      []string `toml:"include"`
}

// Matching configures the optional query-matching extensions. Both default
// off so out-of-the-box results stay deterministic.
type Matching struct {
	Stemmer        string  `toml:"stemmer"` // "suffix" or "porter2"
	Fuzzy          bool    `toml:"fuzzy"`
	FuzzyAlgorithm string  `toml:"fuzzy_algorithm"`
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
}

// Tracking configures the local usage database.
type Tracking struct {
	Enabled bool   `toml:"enabled"`
	DataDir string `toml:"data_dir"`
}

// Config is the full project configuration.
type Config struct {
	Search   Search   `toml:"search"`
	Matching Matching `toml:"matching"`
	Tracking Tracking `toml:"tracking"`
}

// Default returns the configuration used when no .scour.kdl exists.
func Default() *Config {
	return &Config{
		Search: Search{
			MaxResults:   20,
			ContextLines: 2,
			MaxFileKB:    256,
		},
		Matching: Matching{
			Stemmer:        "suffix",
			Fuzzy:          false,
			FuzzyAlgorithm: "jaro-winkler",
			FuzzyThreshold: 0.80,
		},
		Tracking: Tracking{
			Enabled: true,
		},
	}
}

// Validate checks ranges and enumerations. It returns all problems joined
// into one error so a bad config file is reported in a single pass.
func (c *Config) Validate() error {
	var problems []string

	if c.Search.MaxResults < 1 {
		problems = append(problems, "search.max_results must be at least 1")
	}
	if c.Search.ContextLines < 0 {
		problems = append(problems, "search.context_lines cannot be negative")
	}
	if c.Search.MaxFileKB < 1 {
		problems = append(problems, "search.max_file_kb must be at least 1")
	}
	switch c.Matching.Stemmer {
	case "suffix", "porter2":
	default:
		problems = append(problems, fmt.Sprintf("matching.stemmer %q is not one of: suffix, porter2", c.Matching.Stemmer))
	}
	switch c.Matching.FuzzyAlgorithm {
	case "jaro-winkler", "levenshtein", "cosine":
	default:
		problems = append(problems, fmt.Sprintf("matching.fuzzy_algorithm %q is not one of: jaro-winkler, levenshtein, cosine", c.Matching.FuzzyAlgorithm))
	}
	if c.Matching.FuzzyThreshold < 0 || c.Matching.FuzzyThreshold > 1 {
		problems = append(problems, "matching.fuzzy_threshold must be between 0 and 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// RenderTOML returns the effective configuration as a TOML document, which
// `scour config show` prints.
func (c *Config) RenderTOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return string(out), nil
}

// ExampleKDL is the annotated starter file written by `scour config init`.
const ExampleKDL = `// scour project configuration
search {
    max_results 20
    context_lines 2
    max_file_kb 256
    // type_filter "go"
    // exclude "**/testdata/**" "**/*.gen.go"
    // include "src/**"
}

matching {
    // "suffix" keeps results deterministic; "porter2" stems more aggressively
    stemmer "suffix"
    fuzzy false
    fuzzy_algorithm "jaro-winkler"
    fuzzy_threshold 0.8
}

tracking {
    enabled true
    // data_dir "~/.scour"
}
`
