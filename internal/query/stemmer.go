package query

import (
	"github.com/surgebase/porter2"
)

// Stemmer normalizes a query token to its stem. The default implementation
// is a fixed suffix stripper whose output is part of the engine's scoring
// contract; the porter2 variant is an opt-in for broader query expansion.
type Stemmer interface {
	// Stem returns the stem of token, or token unchanged when no rule
	// applies
	Stem(token string) string

	// Name identifies the algorithm for diagnostics and config validation
	Name() string
}

// suffixes tried in order; the first (longest) match wins
var stemSuffixes = []string{"ingly", "edly", "ing", "ed", "es", "s"}

// SuffixStemmer strips the longest matching suffix from stemSuffixes, but
// only when the remainder stays comfortably longer than the suffix removed.
// Applying it twice returns the same result as applying it once.
type SuffixStemmer struct{}

// DefaultStemmer returns the stemmer used unless configuration says
// otherwise.
func DefaultStemmer() Stemmer {
	return SuffixStemmer{}
}

// Stem implements Stemmer
func (SuffixStemmer) Stem(token string) string {
	if !isASCII(token) {
		return token
	}

	for _, suffix := range stemSuffixes {
		if len(token) > len(suffix)+2 && hasSuffix(token, suffix) {
			return token[:len(token)-len(suffix)]
		}
	}
	return token
}

// Name implements Stemmer
func (SuffixStemmer) Name() string {
	return "suffix"
}

// Porter2Stemmer wraps the porter2 snowball stemmer. Selecting it changes
// which derived terms a query expands to, so it is config-gated and never
// the default.
type Porter2Stemmer struct{}

// Stem implements Stemmer
func (Porter2Stemmer) Stem(token string) string {
	if !isASCII(token) {
		return token
	}
	return porter2.Stem(token)
}

// Name implements Stemmer
func (Porter2Stemmer) Name() string {
	return "porter2"
}

// StemmerByName resolves a config value to a stemmer, defaulting to the
// suffix algorithm for unknown names.
func StemmerByName(name string) Stemmer {
	if name == "porter2" {
		return Porter2Stemmer{}
	}
	return SuffixStemmer{}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
