package extract

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/caching"
	"github.com/dtnitsch/smart-reader/pkg/extractor"
	"github.com/dtnitsch/smart-reader/pkg/fetcher"
	"github.com/dtnitsch/smart-reader/pkg/page"
)

// PageFlags are shared by commands that read a page without a browser.
func PageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "Page to fetch. With --file it only sets the page address used for site detection",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Read HTML from a local file instead of fetching",
		},
		&cli.DurationFlag{
			Name:    "settle-delay",
			Usage:   "Pause after expanding collapsed content",
			Value:   models.DefaultSettleDelay,
			EnvVars: []string{"SMART_READER_SETTLE_DELAY"},
		},
		&cli.DurationFlag{
			Name:    "page-ttl",
			Usage:   "Reuse fetched pages for this long (0 disables the page cache)",
			Value:   caching.DefaultTTL,
			EnvVars: []string{"SMART_READER_PAGE_TTL"},
		},
		&cli.DurationFlag{
			Name:  "fetch-timeout",
			Usage: "Timeout for fetching the page",
			Value: fetcher.DefaultTimeout,
		},
	}
}

// LoadPage builds a static page from --file or --url.
func LoadPage(c *cli.Context, logger *slog.Logger) (*page.Static, error) {
	var pageURL *url.URL
	if raw := c.String("url"); raw != "" {
		u, err := common.ParseTargetURL(raw)
		if err != nil {
			return nil, err
		}
		pageURL = u
	}

	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		if pageURL == nil {
			abs, _ := filepath.Abs(path)
			pageURL = &url.URL{Scheme: "file", Path: abs}
		}
		return page.NewStatic(f, pageURL)
	}

	if pageURL == nil {
		return nil, fmt.Errorf("either --url or --file is required")
	}

	var cache fetcher.Cache
	if ttl := c.Duration("page-ttl"); ttl > 0 {
		pc, err := caching.NewCache(caching.DefaultDir(), ttl)
		if err != nil {
			logger.Warn("Page cache unavailable", "error", err)
		} else {
			cache = pc
		}
	}
	f := fetcher.NewFetcher(c.Duration("fetch-timeout"), cache, logger)
	return f.GetPage(c.Context, pageURL)
}

// ExtractAction prints the article title and text of a page.
func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	p, err := LoadPage(c, logger)
	if err != nil {
		return err
	}

	orch := extractor.New(logger, c.Duration("settle-delay"))
	res, err := orch.Extract(c.Context, p)
	if err != nil {
		return err
	}
	logger.Info("Extracted article", "url", p.URL().String(), "source", res.Source, "length", len(res.Text))

	return common.WriteOutput(c.App.Writer, c.String("format"), res)
}
