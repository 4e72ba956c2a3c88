package db

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/pkg/caching"
	dbpkg "github.com/dtnitsch/smart-reader/pkg/db"
)

// Flags select the caches the cache commands operate on.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "cache-db", Usage: "Summary cache database", Value: dbpkg.DefaultPath(), EnvVars: []string{"SMART_READER_CACHE_DB"}},
		&cli.StringFlag{Name: "page-dir", Usage: "Fetched page cache directory", Value: caching.DefaultDir()},
	}
}

// StatsAction prints summary cache counters.
func StatsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("cache-db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	rows, hits, err := database.SummaryStats(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%-10s %s\n", "Database", database.Path())
	fmt.Fprintf(c.App.Writer, "%-10s %d\n", "Summaries", rows)
	fmt.Fprintf(c.App.Writer, "%-10s %d\n", "Hits", hits)
	return nil
}

// PruneAction removes expired summaries and fetched pages.
func PruneAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	ttl := c.Duration("older-than")

	database, err := dbpkg.Open(c.String("cache-db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	summaries, err := database.PruneSummaries(c.Context, time.Now().Add(-ttl))
	if err != nil {
		return err
	}

	pages := 0
	pc, err := caching.NewCache(c.String("page-dir"), c.Duration("page-ttl"))
	if err != nil {
		logger.Warn("Page cache unavailable", "error", err)
	} else if pages, err = pc.Prune(); err != nil {
		logger.Warn("Failed to prune page cache", "error", err)
	}

	fmt.Fprintf(c.App.Writer, "Removed %d summaries and %d pages\n", summaries, pages)
	return nil
}
