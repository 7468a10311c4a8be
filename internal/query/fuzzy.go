package query

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// FuzzyMatcher provides fuzzy term matching so queries still land despite
// typos or small variations. Disabled by default: when off, term matching is
// plain substring containment and scoring is bit-for-bit reproducible.
type FuzzyMatcher struct {
	enabled   bool
	threshold float64
	algorithm string // "jaro-winkler", "levenshtein", "cosine"
}

// NewFuzzyMatcher creates a fuzzy matcher. Thresholds outside (0,1] fall
// back to 0.80.
func NewFuzzyMatcher(enabled bool, threshold float64, algorithm string) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.80
	}
	if algorithm == "" {
		algorithm = "jaro-winkler"
	}
	return &FuzzyMatcher{enabled: enabled, threshold: threshold, algorithm: algorithm}
}

// IsEnabled reports whether fuzzy matching is active
func (fm *FuzzyMatcher) IsEnabled() bool {
	return fm != nil && fm.enabled
}

// MatchesLine reports whether term approximately matches any token of the
// (already lowercased) line. Returns false when the matcher is disabled.
func (fm *FuzzyMatcher) MatchesLine(term, line string) bool {
	if !fm.IsEnabled() || len(term) < 3 {
		return false
	}

	for _, token := range strings.FieldsFunc(line, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '_')
	}) {
		if fm.similar(term, token) {
			return true
		}
	}
	return false
}

func (fm *FuzzyMatcher) similar(a, b string) bool {
	score, err := edlib.StringsSimilarity(a, b, fm.edlibAlgorithm())
	if err != nil {
		return false
	}
	return float64(score) >= fm.threshold
}

func (fm *FuzzyMatcher) edlibAlgorithm() edlib.Algorithm {
	switch fm.algorithm {
	case "levenshtein":
		return edlib.Levenshtein
	case "cosine":
		return edlib.Cosine
	default:
		return edlib.JaroWinkler
	}
}
