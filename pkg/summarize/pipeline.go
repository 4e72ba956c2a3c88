// Package summarize is the service side of summarization: input
// sanitation, length bands, sentence packing and the model backends.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/models"
	"golang.org/x/sync/errgroup"
)

// Levels accepted in a request.
const (
	LevelRatio   = "ratio"
	LevelConcise = "concise"
)

const (
	// MinWords is the smallest input worth summarizing.
	MinWords = 40

	// LongTextChars is the length above which text is always chunked.
	LongTextChars = 4500

	// DefaultWorkers bounds concurrent chunk calls.
	DefaultWorkers = 4
)

// Cache stores finished summaries by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, summary string, words int) error
}

// Pipeline turns a request into a summary with one Backend.
type Pipeline struct {
	Backend       Backend
	Cache         Cache
	Workers       int
	MaxInputChars int
	Logger        *slog.Logger
}

// Summarize runs the request. It returns models.ErrTooShortToSummarize when
// the sanitized text has fewer than MinWords words.
func (p *Pipeline) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	log := p.logger()

	maxChars := p.MaxInputChars
	if maxChars <= 0 {
		maxChars = DefaultMaxInputChars
	}
	text := Sanitize(req.Text, maxChars)
	words := WordCount(text)
	if words < MinWords {
		return "", models.ErrTooShortToSummarize
	}

	level := strings.ToLower(strings.TrimSpace(req.Level))
	if level == "" {
		level = LevelRatio
	}
	ratio := DefaultRatio
	if req.Ratio != nil {
		ratio = *req.Ratio
	}
	final := TargetBand(words, ratio)

	key := common.SummaryKey(text, ratio, level, p.Backend.Name(), p.Backend.Model(), req.DoSample)
	if p.Cache != nil {
		if s, ok, err := p.Cache.Get(ctx, key); err != nil {
			log.Warn("Summary cache read failed", "error", err)
		} else if ok {
			log.Info("Summary cache hit", "words", words)
			return s, nil
		}
	}

	log.Info("Summarizing", "backend", p.Backend.Name(), "words", words, "level", level, "min", final.Min, "max", final.Max)

	var summary string
	var err error
	switch {
	case utf8.RuneCountInString(text) > LongTextChars:
		summary, err = p.twoPass(ctx, text, LongPlan, final, req.DoSample)
	case level == LevelRatio:
		summary, err = p.Backend.SummarizeOnce(ctx, text, final, req.DoSample)
	default:
		summary, err = p.twoPass(ctx, text, ConcisePlan, final, req.DoSample)
	}
	if err != nil {
		return "", err
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, key, summary, words); err != nil {
			log.Warn("Summary cache write failed", "error", err)
		}
	}
	return summary, nil
}

// twoPass summarizes each packed chunk in the intermediate band, then
// summarizes the joined parts in the final band.
func (p *Pipeline) twoPass(ctx context.Context, text string, plan Plan, final Band, doSample bool) (string, error) {
	chunks := Pack(text, plan)
	parts, err := p.summarizeChunks(ctx, chunks, IntermediateBand(), doSample)
	if err != nil {
		return "", err
	}
	p.logger().Debug("First pass finished", "chunks", len(chunks))
	return p.Backend.SummarizeOnce(ctx, strings.Join(parts, " "), final, doSample)
}

// summarizeChunks runs at most Workers backend calls at once and keeps the
// results in chunk order.
func (p *Pipeline) summarizeChunks(ctx context.Context, chunks []string, band Band, doSample bool) ([]string, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, max(1, len(chunks))))
	for i, chunk := range chunks {
		g.Go(func() error {
			s, err := p.Backend.SummarizeOnce(gctx, chunk, band, doSample)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
