package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/scour/internal/search"
)

func sampleOutcome() search.Outcome {
	return search.Outcome{
		ScannedFiles: 12,
		SkippedLarge: 1,
		Hits: []search.Hit{
			{
				Path:         "src/auth.rs",
				Score:        8.75,
				MatchedLines: 5,
				Snippets: []search.Snippet{
					{
						Lines: []search.SnippetLine{
							{Number: 3, Text: "pub fn authenticate_user(name: &str) -> bool {"},
							{Number: 4, Text: "verify_password(name)"},
						},
						MatchedTerms: []string{"user", "auth"},
					},
				},
			},
			{
				Path:         "src/session.rs",
				Score:        4.2,
				MatchedLines: 1,
				Snippets: []search.Snippet{
					{
						Lines:        []search.SnippetLine{{Number: 10, Text: "let user = session.user();"}},
						MatchedTerms: []string{"user"},
					},
				},
			},
		},
	}
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeText, ModeFor(false, false))
	assert.Equal(t, ModeTextCompact, ModeFor(false, true))
	assert.Equal(t, ModeJSON, ModeFor(true, false))
	assert.Equal(t, ModeJSONCompact, ModeFor(true, true))

	assert.True(t, ModeJSONCompact.IsJSON())
	assert.True(t, ModeJSONCompact.IsCompact())
	assert.False(t, ModeText.IsJSON())
	assert.False(t, ModeJSON.IsCompact())
}

func TestRenderText(t *testing.T) {
	r := &Renderer{Mode: ModeText, MaxResults: 20}
	out, err := r.Render("user auth", ".", sampleOutcome())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "🧠 2F for 'user auth' (scan 12F)\n\n"), "header: %q", out)
	assert.Contains(t, out, "📄 src/auth.rs [8.8]\n")
	assert.Contains(t, out, "📄 src/session.rs [4.2]\n")
	assert.Contains(t, out, "     3: pub fn authenticate_user(name: &str) -> bool {\n")
	assert.Contains(t, out, "       ~ user, auth\n")
	assert.Contains(t, out, "  +4 more lines\n")
	assert.NotContains(t, out, "scan stats")
}

func TestRenderText_Compact(t *testing.T) {
	r := &Renderer{Mode: ModeTextCompact, MaxResults: 20}
	out, err := r.Render("user auth", ".", sampleOutcome())
	require.NoError(t, err)

	assert.NotContains(t, out, "~ user", "compact mode suppresses term lists")
	assert.Contains(t, out, "📄 src/auth.rs [8.8]\n")
}

func TestRenderText_TruncatesToMaxResults(t *testing.T) {
	r := &Renderer{Mode: ModeText, MaxResults: 1}
	out, err := r.Render("user auth", ".", sampleOutcome())
	require.NoError(t, err)

	assert.Contains(t, out, "📄 src/auth.rs")
	assert.NotContains(t, out, "📄 src/session.rs")
	assert.Contains(t, out, "... +1F\n")
}

func TestRenderText_ZeroHits(t *testing.T) {
	r := &Renderer{Mode: ModeText, MaxResults: 20}
	out, err := r.Render("nothing here", ".", search.Outcome{ScannedFiles: 7})
	require.NoError(t, err)

	assert.Equal(t, "🧠 0 for 'nothing here'\n", out)
}

func TestRenderText_VerboseScanStats(t *testing.T) {
	r := &Renderer{Mode: ModeText, MaxResults: 20, Verbose: 1}
	out, err := r.Render("user auth", ".", sampleOutcome())
	require.NoError(t, err)

	assert.Contains(t, out, "\nscan stats: skipped 1 large, 0 binary\n")
}

func TestRenderJSON(t *testing.T) {
	r := &Renderer{Mode: ModeJSON, MaxResults: 20}
	out, err := r.Render("user auth", "proj", sampleOutcome())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "\n"))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "user auth", doc["query"])
	assert.Equal(t, "proj", doc["path"])
	assert.Equal(t, float64(2), doc["total_hits"])
	assert.Equal(t, float64(2), doc["shown_hits"])
	assert.Equal(t, float64(12), doc["scanned_files"])
	assert.Equal(t, float64(1), doc["skipped_large"])

	hits, ok := doc["hits"].([]interface{})
	require.True(t, ok)
	require.Len(t, hits, 2)

	first := hits[0].(map[string]interface{})
	assert.Equal(t, "src/auth.rs", first["path"])
	assert.Equal(t, 8.75, first["score"])
	assert.Equal(t, float64(5), first["matched_lines"])
}

func TestRenderJSON_ShownHitsCappedByMaxResults(t *testing.T) {
	r := &Renderer{Mode: ModeJSON, MaxResults: 1}
	out, err := r.Render("user auth", ".", sampleOutcome())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, float64(2), doc["total_hits"])
	assert.Equal(t, float64(1), doc["shown_hits"])
	assert.Len(t, doc["hits"], 1)
}

func TestRenderJSON_ZeroHitsOmitsShownHits(t *testing.T) {
	r := &Renderer{Mode: ModeJSON, MaxResults: 20}
	out, err := r.Render("nothing here", ".", search.Outcome{ScannedFiles: 7, SkippedBinary: 2})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	_, present := doc["shown_hits"]
	assert.False(t, present, "shown_hits must be absent when no hits")
	assert.Equal(t, float64(0), doc["total_hits"])
	assert.Equal(t, float64(2), doc["skipped_binary"])

	hits, ok := doc["hits"].([]interface{})
	require.True(t, ok, "hits must be an empty array, not null")
	assert.Empty(t, hits)
}

func TestRenderJSON_DoesNotEscapeHTML(t *testing.T) {
	outcome := search.Outcome{
		ScannedFiles: 1,
		Hits: []search.Hit{{
			Path:         "tpl.html",
			Score:        3.0,
			MatchedLines: 1,
			Snippets: []search.Snippet{{
				Lines:        []search.SnippetLine{{Number: 1, Text: "<div onclick=\"f(a && b)\">"}},
				MatchedTerms: []string{"div"},
			}},
		}},
	}

	r := &Renderer{Mode: ModeJSON, MaxResults: 20}
	out, err := r.Render("div", ".", outcome)
	require.NoError(t, err)

	assert.Contains(t, out, "<div")
	assert.NotContains(t, out, `<`)
}

func TestCompactPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"short path unchanged", "src/auth.rs", "src/auth.rs"},
		{
			"long deep path is compacted",
			"packages/server/internal/middleware/authentication/session_token_validation.go",
			"packages/.../authentication/session_token_validation.go",
		},
		{
			"long but shallow path unchanged",
			"a/" + strings.Repeat("b", 70) + ".go",
			"a/" + strings.Repeat("b", 70) + ".go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompactPath(tt.path))
		})
	}
}
