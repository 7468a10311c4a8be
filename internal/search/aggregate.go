package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// AnalyzeFile combines the line candidates of one file with its path score
// into a Hit. The second return value is false when the file does not clear
// the aggregate floor.
func (s *Scorer) AnalyzeFile(displayPath, content string, contextLines, snippetsPerFile int) (Hit, bool) {
	lines := splitLines(content)

	var candidates []LineCandidate
	for idx, line := range lines {
		if cand, ok := s.ScoreLine(idx, line); ok {
			candidates = append(candidates, cand)
		}
	}

	pathScore := s.ScorePath(displayPath)
	if len(candidates) == 0 && pathScore < s.weights.FileFloor {
		return Hit{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].LineIdx < candidates[j].LineIdx
	})

	// Greedy pick of non-overlapping anchors: no selected line may lie
	// within 2*context+1 lines of another (exact-line exclusion when
	// context is zero)
	overlapWindow := contextLines*2 + 1
	var selected []LineCandidate
	for _, cand := range candidates {
		overlaps := false
		for _, existing := range selected {
			delta := existing.LineIdx - cand.LineIdx
			if delta < 0 {
				delta = -delta
			}
			if delta <= overlapWindow {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		selected = append(selected, cand)
		if len(selected) >= snippetsPerFile {
			break
		}
	}

	if len(selected) == 0 {
		return Hit{}, false
	}

	snippets := make([]Snippet, 0, len(selected))
	for i := range selected {
		snippets = append(snippets, buildSnippet(lines, selected[i], contextLines))
	}

	fileScore := pathScore + math.Log1p(float64(len(candidates)))
	for rank, cand := range selected {
		weight := s.weights.RankWeights[2]
		if rank < 2 {
			weight = s.weights.RankWeights[rank]
		}
		fileScore += cand.Score * weight
	}

	if fileScore < s.weights.FileFloor {
		return Hit{}, false
	}

	return Hit{
		Path:         displayPath,
		Score:        fileScore,
		MatchedLines: len(candidates),
		Snippets:     snippets,
	}, true
}

// buildSnippet renders the rows around a candidate line. Blank rows are
// dropped; when every row in range is blank a single empty row at the anchor
// keeps the snippet well-formed.
func buildSnippet(lines []string, candidate LineCandidate, contextLines int) Snippet {
	if len(lines) == 0 {
		return Snippet{
			Lines:        []SnippetLine{{Number: candidate.LineIdx + 1}},
			MatchedTerms: candidate.MatchedTerms,
		}
	}

	start := candidate.LineIdx - contextLines
	if start < 0 {
		start = 0
	}
	end := candidate.LineIdx + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	var rendered []SnippetLine
	for idx := start; idx < end; idx++ {
		cleaned := strings.TrimSpace(lines[idx])
		if cleaned == "" {
			continue
		}
		rendered = append(rendered, SnippetLine{
			Number: idx + 1,
			Text:   truncateChars(cleaned, MaxSnippetLineLen),
		})
	}

	if len(rendered) == 0 {
		rendered = append(rendered, SnippetLine{Number: candidate.LineIdx + 1})
	}

	return Snippet{Lines: rendered, MatchedTerms: candidate.MatchedTerms}
}

// splitLines splits file content the way editors count lines: "\n"
// separators, tolerant of "\r\n", no phantom final line after a trailing
// newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// truncateChars truncates to maxLen visible characters with an ellipsis,
// safe for multi-byte text.
func truncateChars(input string, maxLen int) string {
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(input)
	return string(runes[:maxLen-3]) + "..."
}
