// scour is a heuristic project search tool for AI assistants: it scans a
// directory tree statelessly, ranks files against a natural-language query,
// and prints a handful of snippets instead of a full grep transcript.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/scour/internal/diag"
	"github.com/standardbeagle/scour/internal/serrors"
	"github.com/standardbeagle/scour/internal/version"
)

var verboseCount int

func init() {
	// The default version flag's -v alias collides with --verbose's; keep
	// --version but drop the short form so flag registration doesn't panic.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "scour",
		Usage:                  "Condensed heuristic code search for AI assistants",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path (default: .scour.kdl in the search root)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase diagnostic output (repeatable)",
				Count:   &verboseCount,
			},
		},
		Before: func(c *cli.Context) error {
			diag.SetVerbosity(verboseCount)
			return nil
		},
		Commands: []*cli.Command{
			searchCommand(),
			gainCommand(),
			configCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "scour: %v\n", err)
		if serrors.IsInvalidInput(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
