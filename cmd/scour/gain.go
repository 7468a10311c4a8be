package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/scour/internal/tracking"
)

func gainCommand() *cli.Command {
	return &cli.Command{
		Name:  "gain",
		Usage: "Show token savings recorded by tracked searches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "graph",
				Aliases: []string{"g"},
				Usage:   "Show a daily savings graph for the last 30 days",
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Show the ten most recent tracked commands",
			},
			&cli.BoolFlag{
				Name:  "quota",
				Usage: "Estimate how much monthly quota the savings preserved",
			},
			&cli.StringFlag{
				Name:  "tier",
				Usage: "Subscription tier for quota analysis: pro, 5x, 20x",
				Value: "pro",
			},
			&cli.BoolFlag{
				Name:    "compact",
				Aliases: []string{"c"},
				Usage:   "One-line summary",
			},
		},
		Action: runGain,
	}
}

const divider = "────────────────────────────────────────"

func runGain(c *cli.Context) error {
	cfg, err := loadConfig(c, ".")
	if err != nil {
		return err
	}

	store, err := tracking.OpenStore(cfg.Tracking.DataDir)
	if err != nil {
		return fmt.Errorf("opening usage database: %w", err)
	}
	defer store.Close()

	summary, err := store.GetSummary()
	if err != nil {
		return err
	}

	if c.Bool("compact") {
		printCompactSummary(summary)
		return nil
	}

	if summary.TotalCommands == 0 {
		fmt.Println("No tracking data yet.")
		fmt.Println("Run some scour searches to start tracking savings.")
		return nil
	}

	fmt.Println("📊 Scour Token Savings")
	fmt.Println("════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("Total commands:    %d\n", summary.TotalCommands)
	fmt.Printf("Input tokens:      %s\n", formatTokens(summary.TotalInput))
	fmt.Printf("Output tokens:     %s\n", formatTokens(summary.TotalOutput))
	fmt.Printf("Tokens saved:      %s (%.1f%%)\n", formatTokens(summary.TotalSaved), summary.AvgSavingsPct)
	fmt.Println()

	if len(summary.ByCommand) > 0 {
		fmt.Println("By Command:")
		fmt.Println(divider)
		fmt.Printf("%-20s %6s %10s %8s\n", "Command", "Count", "Saved", "Avg%")
		for _, cs := range summary.ByCommand {
			fmt.Printf("%-20s %6d %10s %7.1f%%\n",
				truncateCommand(cs.Command, 18), cs.Count, formatTokens(cs.Saved), cs.AvgSavings)
		}
		fmt.Println()
	}

	if c.Bool("graph") && len(summary.ByDay) > 0 {
		fmt.Println("Daily Savings (last 30 days):")
		fmt.Println(divider)
		printDailyGraph(summary.ByDay)
		fmt.Println()
	}

	if c.Bool("history") {
		recent, err := store.GetRecent(10)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println("Recent Commands:")
			fmt.Println(divider)
			for _, rec := range recent {
				fmt.Printf("%s %-25s -%.0f%% (%s)\n",
					rec.Timestamp.Format("01-02 15:04"),
					truncateCommand(rec.Command, 25),
					rec.SavingsPct,
					formatTokens(rec.SavedTokens))
			}
		}
	}

	if c.Bool("quota") {
		printQuotaAnalysis(summary, c.String("tier"))
	}

	return nil
}

func printCompactSummary(summary *tracking.Summary) {
	if summary.TotalCommands == 0 {
		fmt.Println("0 cmds tracked")
		return
	}
	fmt.Printf("%dcmds %sin %sout %ssaved (%.0f%%)\n",
		summary.TotalCommands,
		formatTokens(summary.TotalInput),
		formatTokens(summary.TotalOutput),
		formatTokens(summary.TotalSaved),
		summary.AvgSavingsPct)
}

func printQuotaAnalysis(summary *tracking.Summary, tier string) {
	// Rough Pro baseline: ~44K tokens per 5h window, six windows a day.
	const estimatedProMonthly = 6_000_000

	var quotaTokens int
	var tierName string
	switch tier {
	case "5x":
		quotaTokens, tierName = estimatedProMonthly*5, "Max 5x ($100/mo)"
	case "20x":
		quotaTokens, tierName = estimatedProMonthly*20, "Max 20x ($200/mo)"
	default:
		quotaTokens, tierName = estimatedProMonthly, "Pro ($20/mo)"
	}

	quotaPct := float64(summary.TotalSaved) / float64(quotaTokens) * 100.0

	fmt.Println("Monthly Quota Analysis:")
	fmt.Println(divider)
	fmt.Printf("Subscription tier:        %s\n", tierName)
	fmt.Printf("Estimated monthly quota:  %s\n", formatTokens(quotaTokens))
	fmt.Printf("Tokens saved (lifetime):  %s\n", formatTokens(summary.TotalSaved))
	fmt.Printf("Quota preserved:          %.1f%%\n", quotaPct)
	fmt.Println()
	fmt.Println("Note: Heuristic estimate based on ~44K tokens/5h (Pro baseline)")
	fmt.Println("      Actual limits use rolling 5-hour windows, not monthly caps.")
}

func printDailyGraph(days []tracking.DayStats) {
	const width = 40

	maxSaved := 1
	for _, d := range days {
		if d.Saved > maxSaved {
			maxSaved = d.Saved
		}
	}

	for _, d := range days {
		date := d.Date
		if len(date) >= 10 {
			date = date[5:10] // MM-DD
		}
		barLen := d.Saved * width / maxSaved
		fmt.Printf("%s │%s%s %s\n", date,
			strings.Repeat("█", barLen),
			strings.Repeat(" ", width-barLen),
			formatTokens(d.Saved))
	}
}

func formatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncateCommand(cmd string, max int) string {
	if len(cmd) <= max {
		return cmd
	}
	return cmd[:max-3] + "..."
}
