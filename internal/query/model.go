// Package query turns a free-text query into a normalized model used for
// relevance scoring: a lowercased phrase plus an ordered, deduplicated term
// list that includes derived stems.
package query

import (
	"strings"
	"unicode"

	"github.com/standardbeagle/scour/internal/serrors"
)

// stopWords are common words that carry no search signal. The set is fixed
// at process start and never mutated.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "code": true, "file": true, "find": true,
	"for": true, "from": true, "how": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "search": true,
	"show": true, "that": true, "the": true, "this": true, "to": true,
	"use": true, "using": true, "what": true, "when": true, "where": true,
	"with": true, "why": true,
}

// Model is the normalized form of a search query. Built once per invocation
// and immutable afterwards.
type Model struct {
	// Phrase is the trimmed, lowercased query string
	Phrase string

	// Terms holds the surviving tokens and their derived stems, first-seen
	// order, no duplicates
	Terms []string
}

// Build constructs a Model from a raw query string using the default suffix
// stemmer. Returns serrors.ErrEmptyQuery when the query trims to nothing.
func Build(raw string) (Model, error) {
	return BuildWithStemmer(raw, DefaultStemmer())
}

// BuildWithStemmer constructs a Model using the given stemmer. The function
// is pure and deterministic for a fixed stemmer.
func BuildWithStemmer(raw string, stemmer Stemmer) (Model, error) {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Model{}, serrors.ErrEmptyQuery
	}

	var terms []string
	seen := make(map[string]bool)
	push := func(term string) {
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	for _, token := range splitTerms(phrase) {
		if len(token) < 2 || stopWords[token] {
			continue
		}
		push(token)

		stemmed := stemmer.Stem(token)
		if stemmed != token && len(stemmed) >= 2 {
			push(stemmed)
		}
	}

	// A query made entirely of stopwords and punctuation still has to be
	// searchable: fall back to the whole phrase as the single term
	if len(terms) == 0 {
		terms = append(terms, phrase)
	}

	return Model{Phrase: phrase, Terms: terms}, nil
}

// splitTerms tokenizes on runs of alphanumeric/underscore characters.
func splitTerms(input string) []string {
	var tokens []string
	var current strings.Builder

	for _, ch := range input {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			current.WriteRune(unicode.ToLower(ch))
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
