// Package display renders a search outcome as a compact text report or a
// structured JSON document. Compact/verbose and text/JSON are independent
// switches folded into one enumerated render mode.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/standardbeagle/scour/internal/search"
	"github.com/standardbeagle/scour/internal/serrors"
)

// Mode selects how an outcome is rendered.
type Mode int

const (
	ModeText Mode = iota
	ModeTextCompact
	ModeJSON
	ModeJSONCompact
)

// ModeFor folds the two boolean switches into a Mode.
func ModeFor(jsonOutput, compact bool) Mode {
	switch {
	case jsonOutput && compact:
		return ModeJSONCompact
	case jsonOutput:
		return ModeJSON
	case compact:
		return ModeTextCompact
	default:
		return ModeText
	}
}

// IsJSON reports whether the mode emits JSON
func (m Mode) IsJSON() bool {
	return m == ModeJSON || m == ModeJSONCompact
}

// IsCompact reports whether the mode suppresses per-snippet term lists
func (m Mode) IsCompact() bool {
	return m == ModeTextCompact || m == ModeJSONCompact
}

// Renderer produces the user-facing report for one invocation.
type Renderer struct {
	Mode       Mode
	MaxResults int
	Verbose    int
}

// Render returns the rendered payload. A zero-hit outcome renders a minimal
// valid message or object rather than erroring; a JSON encoding failure is a
// hard SerializationError.
func (r *Renderer) Render(queryText, rootPath string, outcome search.Outcome) (string, error) {
	if r.Mode.IsJSON() {
		return r.renderJSON(queryText, rootPath, outcome)
	}
	return r.renderText(queryText, outcome), nil
}

type jsonLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

type jsonSnippet struct {
	Lines        []jsonLine `json:"lines"`
	MatchedTerms []string   `json:"matched_terms"`
}

type jsonHit struct {
	Path         string        `json:"path"`
	Score        float64       `json:"score"`
	MatchedLines int           `json:"matched_lines"`
	Snippets     []jsonSnippet `json:"snippets"`
}

type jsonDocument struct {
	Query        string    `json:"query"`
	Path         string    `json:"path"`
	TotalHits    int       `json:"total_hits"`
	ShownHits    *int      `json:"shown_hits,omitempty"`
	ScannedFiles int       `json:"scanned_files"`
	SkippedLarge int       `json:"skipped_large"`
	SkippedBin   int       `json:"skipped_binary"`
	Hits         []jsonHit `json:"hits"`
}

func (r *Renderer) renderJSON(queryText, rootPath string, outcome search.Outcome) (string, error) {
	doc := jsonDocument{
		Query:        queryText,
		Path:         rootPath,
		TotalHits:    len(outcome.Hits),
		ScannedFiles: outcome.ScannedFiles,
		SkippedLarge: outcome.SkippedLarge,
		SkippedBin:   outcome.SkippedBinary,
		Hits:         []jsonHit{},
	}

	if len(outcome.Hits) > 0 {
		shown := r.MaxResults
		if shown > len(outcome.Hits) {
			shown = len(outcome.Hits)
		}
		doc.ShownHits = &shown

		for _, hit := range outcome.Hits[:shown] {
			jh := jsonHit{
				Path:         hit.Path,
				Score:        hit.Score,
				MatchedLines: hit.MatchedLines,
				Snippets:     make([]jsonSnippet, 0, len(hit.Snippets)),
			}
			for _, snippet := range hit.Snippets {
				js := jsonSnippet{
					Lines:        make([]jsonLine, 0, len(snippet.Lines)),
					MatchedTerms: snippet.MatchedTerms,
				}
				if js.MatchedTerms == nil {
					js.MatchedTerms = []string{}
				}
				for _, line := range snippet.Lines {
					js.Lines = append(js.Lines, jsonLine{Line: line.Number, Text: line.Text})
				}
				jh.Snippets = append(jh.Snippets, js)
			}
			doc.Hits = append(doc.Hits, jh)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", serrors.NewSerializationError("json", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderText(queryText string, outcome search.Outcome) string {
	var b strings.Builder

	if len(outcome.Hits) == 0 {
		fmt.Fprintf(&b, "🧠 0 for '%s'\n", queryText)
		return b.String()
	}

	fmt.Fprintf(&b, "🧠 %dF for '%s' (scan %dF)\n\n", len(outcome.Hits), queryText, outcome.ScannedFiles)

	shown := r.MaxResults
	if shown > len(outcome.Hits) {
		shown = len(outcome.Hits)
	}
	for _, hit := range outcome.Hits[:shown] {
		fmt.Fprintf(&b, "📄 %s [%.1f]\n", CompactPath(hit.Path), hit.Score)

		for _, snippet := range hit.Snippets {
			for _, line := range snippet.Lines {
				fmt.Fprintf(&b, "  %4d: %s\n", line.Number, line.Text)
			}
			if !r.Mode.IsCompact() && len(snippet.MatchedTerms) > 0 {
				fmt.Fprintf(&b, "       ~ %s\n", strings.Join(snippet.MatchedTerms, ", "))
			}
			b.WriteByte('\n')
		}

		if hit.MatchedLines > len(hit.Snippets) {
			fmt.Fprintf(&b, "  +%d more lines\n\n", hit.MatchedLines-len(hit.Snippets))
		}
	}

	if len(outcome.Hits) > r.MaxResults {
		fmt.Fprintf(&b, "... +%dF\n", len(outcome.Hits)-r.MaxResults)
	}

	if r.Verbose > 0 {
		fmt.Fprintf(&b, "\nscan stats: skipped %d large, %d binary\n",
			outcome.SkippedLarge, outcome.SkippedBinary)
	}

	return b.String()
}

// CompactPath shortens long paths to first-segment/…/last-two-segments.
// Paths up to 58 characters or with 3 or fewer segments pass through.
func CompactPath(path string) string {
	if len(path) <= 58 {
		return path
	}

	parts := strings.Split(path, "/")
	if len(parts) <= 3 {
		return path
	}

	return fmt.Sprintf("%s/.../%s/%s", parts[0], parts[len(parts)-2], parts[len(parts)-1])
}
