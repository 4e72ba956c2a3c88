// Package extractor runs the prioritized extraction chain for a page:
// site-specific extractor, then the candidate scanner, then readability.
// Each step only runs while the text held so far is below its threshold.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/collector"
	"github.com/dtnitsch/smart-reader/pkg/detector"
	"github.com/dtnitsch/smart-reader/pkg/expander"
	"github.com/dtnitsch/smart-reader/pkg/extractors"
	"github.com/dtnitsch/smart-reader/pkg/page"
	"github.com/dtnitsch/smart-reader/pkg/parser"
	"github.com/dtnitsch/smart-reader/pkg/scanner"
)

// Thresholds on normalized length.
const (
	// RichLength is enough text to skip the scanner.
	RichLength = 800
	// MinViableLength is the floor below which readability is consulted.
	MinViableLength = 400
	// MinSummarizableLength is the caller's floor for sending text to the service.
	MinSummarizableLength = 80
)

// Strategy sources recorded in ExtractionResult.Source.
const (
	SourceScanner     = "scanner"
	SourceReadability = "readability"
)

// Strategy hooks. Zero values use the real implementations.
type (
	SiteLookup      func(detector.SiteFamily) (extractors.Extractor, bool)
	ScanFunc        func(*goquery.Document) (scanner.Candidate, bool)
	ReadabilityFunc func(*goquery.Document, *url.URL) (parser.Article, error)
	ExpandFunc      func(context.Context, page.Page) expander.Outcome
	SleepFunc       func(context.Context, time.Duration) error
)

// Orchestrator produces an ExtractionResult for a page.
type Orchestrator struct {
	Logger      *slog.Logger
	SettleDelay time.Duration

	Expand      ExpandFunc
	Sleep       SleepFunc
	Sites       SiteLookup
	Scan        ScanFunc
	Readability ReadabilityFunc
}

// New returns an Orchestrator wired to the real strategies.
func New(logger *slog.Logger, settleDelay time.Duration) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		Logger:      logger,
		SettleDelay: settleDelay,
		Expand:      expander.Expand,
		Sleep:       sleep,
		Sites:       extractors.For,
		Scan:        scanner.Best,
		Readability: parser.Readability,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// held is the best text found so far and where it came from.
type held struct {
	title  string
	text   string
	length int
	source string
}

func (h *held) offer(title, text, source string) bool {
	n := collector.NormalizedLength(text)
	if n <= h.length {
		return false
	}
	*h = held{title: strings.TrimSpace(title), text: text, length: n, source: source}
	return true
}

// Extract runs the chain against p. It fails with models.ErrExtractionFailed
// when no strategy yields any text.
func (o *Orchestrator) Extract(ctx context.Context, p page.Page) (models.ExtractionResult, error) {
	o.fill()
	log := o.Logger.With("url", p.URL().String())

	outcome := o.Expand(ctx, p)
	log.Debug("Expansion pass finished",
		"scanned", outcome.Scanned, "matched", outcome.Matched,
		"activated", outcome.Activated, "failures", len(outcome.Failures), "error", outcome.Err)

	if err := o.Sleep(ctx, o.SettleDelay); err != nil {
		return models.ExtractionResult{}, err
	}

	doc, err := p.Snapshot(ctx)
	if err != nil {
		return models.ExtractionResult{}, fmt.Errorf("%w: snapshot: %v", models.ErrExtractionFailed, err)
	}

	var best held

	family := detector.Classify(p.URL())
	if ex, ok := o.Sites(family); ok {
		res := ex.Extract(doc)
		best.offer(res.Title, res.Text, family.String())
		log.Info("Site extractor finished", "site", family.String(), "length", best.length)
	}

	if best.length < RichLength {
		if cand, ok := o.Scan(doc); ok {
			title := strings.TrimSpace(cand.Element.Find("h1").First().Text())
			if best.offer(title, cand.Block.Content, SourceScanner) {
				log.Info("Candidate scanner adopted", "length", best.length)
			}
		}
	}

	if best.length < MinViableLength {
		article, err := o.Readability(doc, p.URL())
		switch {
		case err != nil:
			log.Warn("Readability fallback failed", "error", err)
		case best.offer(article.Title, article.Text, SourceReadability):
			log.Info("Readability fallback adopted", "length", best.length)
		}
	}

	title := best.title
	if title == "" {
		title = page.Title(doc)
	}
	text := collector.Normalize(best.text)
	if text == "" {
		return models.ExtractionResult{}, models.ErrExtractionFailed
	}
	return models.ExtractionResult{Title: title, Text: text, Source: best.source}, nil
}

func (o *Orchestrator) fill() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Expand == nil {
		o.Expand = expander.Expand
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	if o.Sites == nil {
		o.Sites = extractors.For
	}
	if o.Scan == nil {
		o.Scan = scanner.Best
	}
	if o.Readability == nil {
		o.Readability = parser.Readability
	}
}

// Usable reports whether text is long enough to be worth summarizing.
func Usable(text string) bool {
	return len([]rune(strings.TrimSpace(text))) >= MinSummarizableLength
}
