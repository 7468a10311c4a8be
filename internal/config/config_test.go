package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, 2, cfg.Search.ContextLines)
	assert.Equal(t, 256, cfg.Search.MaxFileKB)
	assert.Equal(t, "suffix", cfg.Matching.Stemmer)
	assert.False(t, cfg.Matching.Fuzzy)
	assert.True(t, cfg.Tracking.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestParseKDL_OverridesDefaults(t *testing.T) {
	cfg, err := ParseKDL(`
search {
    max_results 5
    context_lines 0
    max_file_kb 64
    type_filter "go"
    exclude "**/testdata/**" "**/*.gen.go"
}

matching {
    stemmer "porter2"
    fuzzy true
    fuzzy_algorithm "levenshtein"
    fuzzy_threshold 0.9
}

tracking {
    enabled false
}
`)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 0, cfg.Search.ContextLines)
	assert.Equal(t, 64, cfg.Search.MaxFileKB)
	assert.Equal(t, "go", cfg.Search.TypeFilter)
	assert.Equal(t, []string{"**/testdata/**", "**/*.gen.go"}, cfg.Search.Exclude)
	assert.Equal(t, "porter2", cfg.Matching.Stemmer)
	assert.True(t, cfg.Matching.Fuzzy)
	assert.Equal(t, "levenshtein", cfg.Matching.FuzzyAlgorithm)
	assert.InDelta(t, 0.9, cfg.Matching.FuzzyThreshold, 1e-9)
	assert.False(t, cfg.Tracking.Enabled)
}

func TestParseKDL_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := ParseKDL(`
search {
    max_results 3
}
`)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, 2, cfg.Search.ContextLines)
	assert.Equal(t, "suffix", cfg.Matching.Stemmer)
}

func TestParseKDL_Malformed(t *testing.T) {
	_, err := ParseKDL(`search { max_results`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file is read from the root", func(t *testing.T) {
		root := t.TempDir()
		content := "search {\n    max_results 7\n}\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

		cfg, err := Load(root)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Search.MaxResults)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		root := t.TempDir()
		content := "search {\n    max_results 0\n}\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

		_, err := Load(root)
		assert.ErrorContains(t, err, "max_results")
	})
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxResults = 0
	cfg.Matching.Stemmer = "snowball"
	cfg.Matching.FuzzyThreshold = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "max_results")
	assert.ErrorContains(t, err, "snowball")
	assert.ErrorContains(t, err, "fuzzy_threshold")
}

func TestRenderTOML(t *testing.T) {
	out, err := Default().RenderTOML()
	require.NoError(t, err)

	assert.Contains(t, out, "[search]")
	assert.Contains(t, out, "max_results = 20")
	assert.Contains(t, out, "[matching]")
	assert.Contains(t, out, "stemmer = 'suffix'")
	assert.Contains(t, out, "fuzzy = false")
	assert.Contains(t, out, "[tracking]")
	assert.Contains(t, out, "enabled = true")
}

func TestExampleKDL_ParsesAndValidates(t *testing.T) {
	cfg, err := ParseKDL(ExampleKDL)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// The starter file spells out the defaults
	assert.Equal(t, Default().Search, cfg.Search)
	assert.Equal(t, Default().Matching, cfg.Matching)
}
