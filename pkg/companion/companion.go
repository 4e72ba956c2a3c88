// Package companion runs one extraction-and-summarize cycle per control
// activation and renders the outcome.
package companion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/dtnitsch/smart-reader/models"
	"github.com/dtnitsch/smart-reader/pkg/extractor"
	"github.com/dtnitsch/smart-reader/pkg/overlay"
	"github.com/dtnitsch/smart-reader/pkg/page"
)

// ErrBusy is returned when a cycle is already in flight.
var ErrBusy = errors.New("a summary is already in progress")

type Extractor interface {
	Extract(ctx context.Context, p page.Page) (models.ExtractionResult, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string, ratio float64, level string) (string, error)
}

// Control is the visible trigger. It rejects input while busy.
type Control interface {
	SetBusy(busy bool) error
}

// Result is a finished cycle.
type Result struct {
	Extraction models.ExtractionResult
	Summary    string
}

// Handler is the activation handler. Only one cycle runs at a time.
type Handler struct {
	Extractor  Extractor
	Summarizer Summarizer
	Presenter  overlay.Presenter
	Control    Control
	Ratio      float64
	Level      string
	Logger     *slog.Logger

	busy atomic.Bool
}

// Activate extracts the page, summarizes it and shows the panel. Every
// failure is also shown as an error panel before it is returned.
func (h *Handler) Activate(ctx context.Context, p page.Page) (Result, error) {
	if !h.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer h.busy.Store(false)

	log := h.logger()
	if h.Control != nil {
		if err := h.Control.SetBusy(true); err != nil {
			log.Warn("Failed to disable control", "error", err)
		}
		defer func() {
			if err := h.Control.SetBusy(false); err != nil {
				log.Warn("Failed to re-enable control", "error", err)
			}
		}()
	}

	res, err := h.cycle(ctx, p)
	if err != nil {
		log.Warn("Summary cycle failed", "error", err)
		if perr := h.Presenter.Show(ctx, overlay.ErrorPanel(err)); perr != nil {
			log.Error("Failed to show error panel", "error", perr)
		}
		return Result{}, err
	}

	if err := h.Presenter.Show(ctx, overlay.SummaryPanel(res.Extraction.Title, res.Summary)); err != nil {
		return res, fmt.Errorf("failed to show summary: %w", err)
	}
	return res, nil
}

func (h *Handler) cycle(ctx context.Context, p page.Page) (Result, error) {
	ex, err := h.Extractor.Extract(ctx, p)
	if err != nil {
		return Result{}, err
	}
	if !extractor.Usable(ex.Text) {
		return Result{Extraction: ex}, fmt.Errorf("%w (%d characters)", models.ErrTooShortToSummarize, len([]rune(strings.TrimSpace(ex.Text))))
	}

	h.logger().Info("Summarizing", "source", ex.Source, "length", len(ex.Text))
	summary, err := h.Summarizer.Summarize(ctx, ex.Text, h.Ratio, h.Level)
	if err != nil {
		return Result{Extraction: ex}, err
	}
	return Result{Extraction: ex, Summary: summary}, nil
}

// Busy reports whether a cycle is in flight.
func (h *Handler) Busy() bool {
	return h.busy.Load()
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}
