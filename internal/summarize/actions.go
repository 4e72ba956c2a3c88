package summarize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/internal/extract"
	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/client"
	"github.com/dtnitsch/smart-reader/pkg/companion"
	"github.com/dtnitsch/smart-reader/pkg/extractor"
	"github.com/dtnitsch/smart-reader/pkg/overlay"
)

// Output is the structured result of a summarize run.
type Output struct {
	Title   string `json:"title" yaml:"title"`
	Source  string `json:"source" yaml:"source"`
	Summary string `json:"summary" yaml:"summary"`
}

// SummarizeAction runs one full cycle against a static page and renders the
// panel in the terminal.
func SummarizeAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg := ServiceConfig(c)

	p, err := extract.LoadPage(c, logger)
	if err != nil {
		return err
	}

	term := overlay.NewTerminal(c.App.Writer)
	h := &companion.Handler{
		Extractor:  extractor.New(logger, cfg.SettleDelay),
		Summarizer: client.New(cfg.ServiceURL, cfg.Timeout),
		Presenter:  term,
		Ratio:      cfg.Ratio,
		Level:      cfg.Level,
		Logger:     logger,
	}

	// Structured formats print the result instead of the panel.
	format := c.String("format")
	if format != "" {
		term = overlay.NewTerminal(c.App.ErrWriter)
		h.Presenter = term
	}

	res, err := h.Activate(c.Context, p)
	if err != nil {
		return err
	}

	if c.Bool("copy") {
		copyPanel(c.Context, overlay.NewSystemClipboard(), term, c.App.ErrWriter, logger)
	}

	if format == "" {
		return nil
	}
	return common.WriteOutput(c.App.Writer, format, Output{
		Title:   res.Extraction.Title,
		Source:  res.Extraction.Source,
		Summary: res.Summary,
	})
}

// copyPanel copies the body of the panel on screen and reports the outcome
// on w.
func copyPanel(ctx context.Context, cb overlay.Clipboard, term *overlay.Terminal, w io.Writer, logger *slog.Logger) {
	panel, ok := term.Current()
	if !ok {
		fmt.Fprintln(w, overlay.ManualCopyMessage)
		return
	}
	out := overlay.CopyBody(ctx, cb, panel)
	if out.Err != nil {
		logger.Warn("Clipboard copy failed", "error", out.Err)
	}
	fmt.Fprintln(w, out.Message)
}

// ServiceFlags configure the summarization client.
func ServiceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "service-url",
			Usage:   "Base URL of the summarization service",
			Value:   models.DefaultServiceURL,
			EnvVars: []string{"SMART_READER_SERVICE_URL"},
		},
		&cli.Float64Flag{
			Name:    "ratio",
			Usage:   "Target summary length as a fraction of the input",
			Value:   models.DefaultRatio,
			EnvVars: []string{"SMART_READER_RATIO"},
		},
		&cli.StringFlag{
			Name:    "level",
			Usage:   "Summary level: ratio or concise",
			Value:   models.DefaultLevel,
			EnvVars: []string{"SMART_READER_LEVEL"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Timeout for the summarization request",
			Value:   90 * time.Second,
			EnvVars: []string{"SMART_READER_TIMEOUT"},
		},
	}
}

// ServiceConfig reads the client flags.
func ServiceConfig(c *cli.Context) models.CompanionConfig {
	return models.CompanionConfig{
		ServiceURL:  c.String("service-url"),
		Ratio:       c.Float64("ratio"),
		Level:       c.String("level"),
		SettleDelay: c.Duration("settle-delay"),
		Timeout:     c.Duration("timeout"),
	}.WithDefaults()
}
