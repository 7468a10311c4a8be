// Package search implements the heuristic relevance engine: it scores every
// line of every candidate file against a query model, aggregates line
// candidates into per-file hits with representative snippets, and ranks the
// hits deterministically.
package search

// Engine limits fixed at process start.
const (
	// MaxSnippetsPerFile caps representative snippets per hit in verbose mode
	MaxSnippetsPerFile = 2

	// MaxSnippetLineLen is the visible-character cap for a rendered snippet row
	MaxSnippetLineLen = 140

	// TranscriptHitCap bounds how many hits contribute snippet rows to the
	// raw transcript handed to the usage tracker
	TranscriptHitCap = 60
)

// Weights holds the empirical scoring constants. The values are preserved
// verbatim from tuning runs; they are configuration, not derived quantities.
type Weights struct {
	PhraseLine     float64 // full-phrase substring match on a line
	TermLong       float64 // term match, term length >= 5
	TermShort      float64 // term match, shorter terms
	MultiTerm      float64 // bonus when more than one distinct term matched
	Definition     float64 // bonus for symbol-definition lines
	CommentFactor  float64 // multiplier for comment-prefixed lines
	LongLineFactor float64 // multiplier for lines over 220 visible chars
	LineFloor      float64 // minimum score for a line candidate
	PhrasePath     float64 // full-phrase substring match on the path
	TermPath       float64 // term match on the path
	FileFloor      float64 // minimum aggregate score for a reported hit
	RankWeights    [3]float64
}

// DefaultWeights returns the tuned constants.
func DefaultWeights() Weights {
	return Weights{
		PhraseLine:     6.0,
		TermLong:       1.7,
		TermShort:      1.4,
		MultiTerm:      1.2,
		Definition:     2.5,
		CommentFactor:  0.7,
		LongLineFactor: 0.9,
		LineFloor:      1.2,
		PhrasePath:     3.5,
		TermPath:       1.2,
		FileFloor:      2.4,
		RankWeights:    [3]float64{1.0, 0.45, 0.25},
	}
}

// LineCandidate is a qualifying line of one file. Ephemeral: produced by the
// scorer, consumed by the aggregator.
type LineCandidate struct {
	LineIdx      int // 0-based
	Score        float64
	MatchedTerms []string
}

// SnippetLine is one rendered row of a snippet.
type SnippetLine struct {
	Number int    // 1-based line number
	Text   string // trimmed, truncated
}

// Snippet is a context-padded excerpt anchored on one candidate line.
type Snippet struct {
	Lines        []SnippetLine
	MatchedTerms []string
}

// Hit is a file that cleared the aggregate score floor.
type Hit struct {
	Path         string
	Score        float64
	MatchedLines int // total qualifying lines, may exceed snippets shown
	Snippets     []Snippet
}

// Outcome is the result of one full scan.
type Outcome struct {
	ScannedFiles  int
	SkippedLarge  int
	SkippedBinary int
	Hits          []Hit

	// RawTranscript is a flat path:line:text record built for the usage
	// tracker; it is never shown to the user
	RawTranscript string
}
