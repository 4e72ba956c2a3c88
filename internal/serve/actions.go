package serve

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/pkg/db"
	"github.com/dtnitsch/smart-reader/pkg/server"
	"github.com/dtnitsch/smart-reader/pkg/summarize"
)

// Flags configure the summarization service. The unprefixed environment
// names are the ones deployments of the service already use.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "addr", Value: "127.0.0.1:8000", Usage: "Listen address", EnvVars: []string{"SMART_READER_ADDR"}},
		&cli.StringFlag{Name: "backend", Value: summarize.ModeAuto, Usage: "auto, hf, openai or local", EnvVars: []string{"SUMMARIZER_BACKEND"}},
		&cli.StringFlag{Name: "hf-token", Usage: "Hugging Face API token", EnvVars: []string{"HF_TOKEN"}},
		&cli.StringFlag{Name: "hf-model", Value: summarize.DefaultHFModel, Usage: "Hugging Face model id", EnvVars: []string{"HF_MODEL"}},
		&cli.StringFlag{Name: "openai-key", Usage: "OpenAI API key", EnvVars: []string{"OPENAI_API_KEY"}},
		&cli.StringFlag{Name: "openai-base-url", Usage: "OpenAI-compatible API base URL", EnvVars: []string{"OPENAI_BASE_URL"}},
		&cli.StringFlag{Name: "openai-model", Value: summarize.DefaultOpenAIModel, Usage: "Chat model", EnvVars: []string{"OPENAI_MODEL"}},
		&cli.DurationFlag{Name: "request-timeout", Value: summarize.DefaultRequestTimeout, Usage: "Timeout per backend call", EnvVars: []string{"REQUEST_TIMEOUT"}},
		&cli.IntFlag{Name: "max-workers", Value: summarize.DefaultWorkers, Usage: "Concurrent chunk calls", EnvVars: []string{"MAX_WORKERS"}},
		&cli.IntFlag{Name: "max-input-chars", Value: summarize.DefaultMaxInputChars, Usage: "Input cap after sanitizing", EnvVars: []string{"MAX_INPUT_CHARS"}},
		&cli.StringFlag{Name: "cache-db", Usage: "Summary cache database (default under the XDG cache dir)", EnvVars: []string{"SMART_READER_CACHE_DB"}},
		&cli.DurationFlag{Name: "cache-ttl", Value: db.DefaultSummaryTTL, Usage: "Summary cache lifetime (0 keeps entries forever)", EnvVars: []string{"SMART_READER_CACHE_TTL"}},
		&cli.BoolFlag{Name: "no-cache", Usage: "Disable the summary cache"},
	}
}

// ServeAction runs the summarization service until interrupted.
func ServeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	backend, err := summarize.NewBackend(summarize.Config{
		Mode:           c.String("backend"),
		HFToken:        c.String("hf-token"),
		HFModel:        c.String("hf-model"),
		OpenAIKey:      c.String("openai-key"),
		OpenAIBaseURL:  c.String("openai-base-url"),
		OpenAIModel:    c.String("openai-model"),
		RequestTimeout: c.Duration("request-timeout"),
	}, logger)
	if err != nil {
		return err
	}

	pipeline := &summarize.Pipeline{
		Backend:       backend,
		Workers:       c.Int("max-workers"),
		MaxInputChars: c.Int("max-input-chars"),
		Logger:        logger,
	}

	if !c.Bool("no-cache") {
		path := c.String("cache-db")
		if path == "" {
			path = db.DefaultPath()
		}
		database, err := db.Open(path)
		if err != nil {
			// The service works without a cache.
			logger.Warn("Summary cache unavailable", "path", path, "error", err)
		} else {
			defer database.Close()
			ttl := c.Duration("cache-ttl")
			if ttl > 0 {
				if n, err := database.PruneSummaries(c.Context, time.Now().Add(-ttl)); err != nil {
					logger.Warn("Failed to prune summary cache", "error", err)
				} else if n > 0 {
					logger.Info("Pruned summary cache", "removed", n)
				}
			}
			pipeline.Cache = &db.SummaryCache{DB: database, TTL: ttl, Backend: backend.Name()}
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(pipeline, backend, logger).ListenAndServe(ctx, c.String("addr")); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
