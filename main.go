package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/db"
	"github.com/dtnitsch/smart-reader/internal/extract"
	"github.com/dtnitsch/smart-reader/internal/serve"
	"github.com/dtnitsch/smart-reader/internal/summarize"
	"github.com/dtnitsch/smart-reader/internal/toggle"
	"github.com/dtnitsch/smart-reader/internal/watch"
	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/caching"
	dbpkg "github.com/dtnitsch/smart-reader/pkg/db"
	"github.com/dtnitsch/smart-reader/pkg/help"
	"github.com/dtnitsch/smart-reader/pkg/preference"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json or yaml",
	}
}

func preferencesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "preferences",
		Usage:   "Preference file",
		Value:   preference.DefaultPath(),
		EnvVars: []string{"SMART_READER_PREFERENCES"},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func main() {
	app := &cli.App{
		Name:  "smart-reader",
		Usage: "Extract the main text of a web page and summarize it",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Only log errors", EnvVars: []string{"SMART_READER_QUIET"}},
			&cli.BoolFlag{Name: "verbose", Usage: "Log debug details", EnvVars: []string{"SMART_READER_VERBOSE"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Print the article title and text of a page",
				Flags:  concat(extract.PageFlags(), []cli.Flag{formatFlag()}),
				Action: extract.ExtractAction,
			},
			{
				Name:  "summarize",
				Usage: "Extract a page and summarize it through the service",
				Flags: concat(extract.PageFlags(), summarize.ServiceFlags(), []cli.Flag{
					formatFlag(),
					&cli.BoolFlag{Name: "copy", Usage: "Copy the summary to the clipboard"},
				}),
				Action: summarize.SummarizeAction,
			},
			{
				Name:  "watch",
				Usage: "Open a page in Chrome with the floating summarize control",
				Flags: concat(summarize.ServiceFlags(), []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "Page to open", Required: true},
					&cli.StringFlag{Name: "remote", Usage: "DevTools WebSocket URL of a running Chrome", EnvVars: []string{"SMART_READER_CHROME_URL"}},
					&cli.BoolFlag{Name: "headless", Usage: "Launch Chrome without a window"},
					&cli.BoolFlag{Name: "stealth", Usage: "Hide automation fingerprints", Value: true},
					&cli.DurationFlag{Name: "navigate-timeout", Usage: "Page load timeout", Value: 30 * time.Second},
					&cli.DurationFlag{Name: "settle-delay", Usage: "Pause after expanding collapsed content", Value: models.DefaultSettleDelay, EnvVars: []string{"SMART_READER_SETTLE_DELAY"}},
					preferencesFlag(),
				}),
				Action: watch.WatchAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the summarization service",
				Flags:  serve.Flags(),
				Action: serve.ServeAction,
			},
			{
				Name:      "toggle",
				Usage:     "Show or hide the floating control",
				ArgsUsage: "on|off|status",
				Flags:     []cli.Flag{preferencesFlag()},
				Action:    toggle.ToggleAction,
			},
			{
				Name:  "cache",
				Usage: "Inspect or prune the summary and page caches",
				Flags: db.Flags(),
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Show summary cache counters",
						Action: db.StatsAction,
					},
					{
						Name:  "prune",
						Usage: "Delete expired entries",
						Flags: []cli.Flag{
							&cli.DurationFlag{Name: "older-than", Usage: "Summary age to keep", Value: dbpkg.DefaultSummaryTTL},
							&cli.DurationFlag{Name: "page-ttl", Usage: "Fetched page age to keep", Value: caching.DefaultTTL},
						},
						Action: db.PruneAction,
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
