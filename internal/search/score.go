package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/standardbeagle/scour/internal/query"
)

// definitionRe is a cheap, language-agnostic heuristic for symbol
// definitions: optional visibility/async keywords followed by a definition
// keyword and an identifier. It is deliberately not a parser.
var definitionRe = regexp.MustCompile(
	`^\s*(?:pub\s+)?(?:async\s+)?(?:fn|def|class|struct|enum|trait|interface|impl|type)\s+[A-Za-z_][A-Za-z0-9_]*`)

// commentMarkers are line prefixes that demote a match to commentary.
var commentMarkers = []string{"//", "#", "*", "/*", "--"}

// IsDefinitionLine reports whether the line looks like a symbol definition.
// Isolated so the heuristic can be swapped per target language without
// touching the scoring arithmetic.
func IsDefinitionLine(line string) bool {
	return definitionRe.MatchString(line)
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// Scorer scores lines and paths against one query model. Stateless apart
// from its configuration; reused across every file of an invocation.
type Scorer struct {
	model   query.Model
	weights Weights
	fuzzy   *query.FuzzyMatcher
}

// NewScorer creates a scorer for the given model.
func NewScorer(model query.Model, weights Weights, fuzzy *query.FuzzyMatcher) *Scorer {
	return &Scorer{model: model, weights: weights, fuzzy: fuzzy}
}

// ScoreLine scores one 0-indexed line. The second return value is false when
// the line yields no candidate: empty after trimming, no term matched, or
// the final score fell below the acceptance floor.
func (s *Scorer) ScoreLine(lineIdx int, line string) (LineCandidate, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineCandidate{}, false
	}

	lower := strings.ToLower(trimmed)
	score := 0.0
	var matched []string

	if len(s.model.Phrase) >= 3 && strings.Contains(lower, s.model.Phrase) {
		score += s.weights.PhraseLine
	}

	for _, term := range s.model.Terms {
		switch {
		case strings.Contains(lower, term):
			if len(term) >= 5 {
				score += s.weights.TermLong
			} else {
				score += s.weights.TermShort
			}
			matched = append(matched, term)
		case s.fuzzy.MatchesLine(term, lower):
			score += s.weights.TermShort
			matched = append(matched, term)
		}
	}

	matched = dedupTerms(matched)
	if len(matched) == 0 {
		return LineCandidate{}, false
	}

	if len(matched) > 1 {
		score += s.weights.MultiTerm
	}

	if IsDefinitionLine(trimmed) {
		score += s.weights.Definition
	}

	if isCommentLine(trimmed) {
		score *= s.weights.CommentFactor
	}

	if utf8.RuneCountInString(trimmed) > 220 {
		score *= s.weights.LongLineFactor
	}

	if score < s.weights.LineFloor {
		return LineCandidate{}, false
	}

	return LineCandidate{LineIdx: lineIdx, Score: score, MatchedTerms: matched}, true
}

// ScorePath scores a displayed relative path. Phrase and term matching only;
// no multi-term or definition bonuses.
func (s *Scorer) ScorePath(path string) float64 {
	lower := strings.ToLower(path)
	score := 0.0

	if len(s.model.Phrase) >= 3 && strings.Contains(lower, s.model.Phrase) {
		score += s.weights.PhrasePath
	}

	for _, term := range s.model.Terms {
		if strings.Contains(lower, term) {
			score += s.weights.TermPath
		}
	}

	return score
}

func dedupTerms(terms []string) []string {
	if len(terms) < 2 {
		return terms
	}
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
