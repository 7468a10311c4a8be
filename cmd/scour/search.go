package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/scour/internal/config"
	"github.com/standardbeagle/scour/internal/diag"
	"github.com/standardbeagle/scour/internal/display"
	"github.com/standardbeagle/scour/internal/query"
	"github.com/standardbeagle/scour/internal/search"
	"github.com/standardbeagle/scour/internal/serrors"
	"github.com/standardbeagle/scour/internal/tracking"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Rank files in a directory tree against a natural-language query",
		ArgsUsage: "QUERY [PATH]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-results",
				Aliases: []string{"n"},
				Usage:   "Max number of files to show",
			},
			&cli.IntFlag{
				Name:    "context",
				Aliases: []string{"C"},
				Usage:   "Lines of context around each matched line",
				Value:   -1,
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Only scan files of this type (e.g. go, rust, py)",
			},
			&cli.IntFlag{
				Name:  "max-file-kb",
				Usage: "Skip files larger than this many KB",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:    "compact",
				Aliases: []string{"c"},
				Usage:   "One snippet per file, no context lines or term lists",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Exclude files matching glob pattern (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only scan files matching glob pattern (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "no-track",
				Usage: "Do not record token savings for this invocation",
			},
		},
		Action: runSearch,
	}
}

func runSearch(c *cli.Context) error {
	// The query is validated before anything else: an empty query must fail
	// without touching the filesystem, the config, or the tracking store.
	if c.NArg() < 1 {
		return serrors.ErrEmptyQuery
	}
	queryText := strings.TrimSpace(c.Args().Get(0))
	if queryText == "" {
		return serrors.ErrEmptyQuery
	}

	root := "."
	if c.NArg() > 1 {
		root = c.Args().Get(1)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return serrors.NewInputError("path", root, "path does not exist or is not a directory")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return serrors.NewInputError("path", root, "path cannot be resolved")
	}

	cfg, err := loadConfig(c, absRoot)
	if err != nil {
		return err
	}

	store := openTrackingStore(cfg, c.Bool("no-track"))
	if store != nil {
		defer store.Close()
	}
	timed := tracking.StartTimed(store)

	model, err := query.BuildWithStemmer(queryText, query.StemmerByName(cfg.Matching.Stemmer))
	if err != nil {
		return err
	}
	diag.Logf(1, "query model: phrase=%q terms=%v", model.Phrase, model.Terms)

	maxResults := cfg.Search.MaxResults
	if c.IsSet("max-results") {
		maxResults = c.Int("max-results")
	}
	contextLines := cfg.Search.ContextLines
	if c.Int("context") >= 0 {
		contextLines = c.Int("context")
	}
	maxFileKB := cfg.Search.MaxFileKB
	if c.IsSet("max-file-kb") {
		maxFileKB = c.Int("max-file-kb")
	}
	if maxFileKB < 1 {
		maxFileKB = 1
	}
	typeFilter := cfg.Search.TypeFilter
	if c.IsSet("type") {
		typeFilter = c.String("type")
	}

	snippetsPerFile := search.MaxSnippetsPerFile
	if c.Bool("compact") {
		snippetsPerFile = 1
		contextLines = 0
	}

	opts := search.Options{
		ContextLines:    contextLines,
		SnippetsPerFile: snippetsPerFile,
		TypeFilter:      typeFilter,
		MaxFileBytes:    int64(maxFileKB) * 1024,
		Exclude:         append(cfg.Search.Exclude, c.StringSlice("exclude")...),
		Include:         append(cfg.Search.Include, c.StringSlice("include")...),
	}
	if cfg.Matching.Fuzzy {
		opts.Fuzzy = query.NewFuzzyMatcher(true, cfg.Matching.FuzzyThreshold, cfg.Matching.FuzzyAlgorithm)
	}

	outcome := search.Run(model, absRoot, opts)

	renderer := &display.Renderer{
		Mode:       display.ModeFor(c.Bool("json"), c.Bool("compact")),
		MaxResults: maxResults,
		Verbose:    verboseCount,
	}
	rendered, err := renderer.Render(queryText, root, outcome)
	if err != nil {
		return err
	}
	fmt.Print(rendered)

	timed.Track(
		fmt.Sprintf("grep -rn %s %s", shellQuote(queryText), root),
		fmt.Sprintf("scour search %s %s", shellQuote(queryText), root),
		outcome.RawTranscript,
		rendered,
	)
	return nil
}

// loadConfig resolves the project configuration: the global --config path
// when given, otherwise .scour.kdl at the search root.
func loadConfig(c *cli.Context, root string) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load(root)
}

// openTrackingStore returns nil (no-op tracking) whenever the store cannot
// be opened; search results never depend on the usage database.
func openTrackingStore(cfg *config.Config, noTrack bool) *tracking.Store {
	if noTrack || !cfg.Tracking.Enabled {
		return nil
	}
	store, err := tracking.OpenStore(cfg.Tracking.DataDir)
	if err != nil {
		diag.Logf(1, "tracking disabled: %v", err)
		return nil
	}
	return store
}

func shellQuote(s string) string {
	if !strings.ContainsAny(s, " \t'\"") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
