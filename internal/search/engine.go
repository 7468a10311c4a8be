package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/scour/internal/diag"
	"github.com/standardbeagle/scour/internal/query"
	"github.com/standardbeagle/scour/internal/scan"
)

// Options configures one search invocation.
type Options struct {
	// ContextLines of padding around each snippet anchor
	ContextLines int

	// SnippetsPerFile caps representative snippets per hit
	SnippetsPerFile int

	// TypeFilter restricts candidate files to a type alias; empty = all
	TypeFilter string

	// MaxFileBytes is the per-file size ceiling
	MaxFileBytes int64

	// Exclude / Include are doublestar globs applied relative to the root
	Exclude []string
	Include []string

	// Fuzzy enables approximate term matching; nil or disabled means exact
	// substring semantics
	Fuzzy *query.FuzzyMatcher

	// Weights are the scoring constants; nil means DefaultWeights
	Weights *Weights
}

// Run performs a full stateless scan: walk the tree, score each file as it
// is read, aggregate, and rank. Files are processed strictly one at a time
// and dropped before the next is opened, so peak memory is bounded by the
// per-file size ceiling, not repository size.
func Run(model query.Model, root string, opts Options) Outcome {
	weights := DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	scorer := NewScorer(model, weights, opts.Fuzzy)

	walker := scan.NewWalker(root, scan.Options{
		TypeFilter:   opts.TypeFilter,
		MaxFileBytes: opts.MaxFileBytes,
		Exclude:      opts.Exclude,
		Include:      opts.Include,
	})

	outcome := Outcome{}
	stats := walker.Walk(func(f scan.File) {
		if hit, ok := scorer.AnalyzeFile(f.DisplayPath, f.Content, opts.ContextLines, opts.SnippetsPerFile); ok {
			outcome.Hits = append(outcome.Hits, hit)
			diag.Logf(2, "search: hit %s [%.2f]\n", hit.Path, hit.Score)
		}
	})

	outcome.ScannedFiles = stats.Scanned
	outcome.SkippedLarge = stats.SkippedLarge
	outcome.SkippedBinary = stats.SkippedBinary

	sortHits(outcome.Hits)
	outcome.RawTranscript = buildTranscript(outcome.Hits)
	return outcome
}

// sortHits orders hits by score descending, ties broken by case-insensitive
// path ascending. The ordering is total, so results are reproducible across
// runs.
func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return strings.ToLower(hits[i].Path) < strings.ToLower(hits[j].Path)
	})
}

// buildTranscript flattens the top hits into path:line:text rows for the
// usage tracker.
func buildTranscript(hits []Hit) string {
	var b strings.Builder
	limit := len(hits)
	if limit > TranscriptHitCap {
		limit = TranscriptHitCap
	}
	for _, hit := range hits[:limit] {
		for _, snippet := range hit.Snippets {
			for _, line := range snippet.Lines {
				fmt.Fprintf(&b, "%s:%d:%s\n", hit.Path, line.Number, line.Text)
			}
		}
	}
	return b.String()
}
