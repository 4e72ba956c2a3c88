// Package overlay renders results to the user and copies them to the
// clipboard.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dtnitsch/smart-reader/models"
)

// Kind separates successful summaries from errors.
type Kind string

const (
	KindSummary Kind = "summary"
	KindError   Kind = "error"
)

// Panel is a dismissible result. Body is shown verbatim.
type Panel struct {
	Title string
	Body  string
	Kind  Kind
}

// SummaryPanel builds the panel for a finished summary.
func SummaryPanel(pageTitle, summary string) Panel {
	title := "Summary"
	if t := strings.TrimSpace(pageTitle); t != "" {
		title = "Summary: " + t
	}
	return Panel{Title: title, Body: summary, Kind: KindSummary}
}

// ErrorPanel builds the panel for a failed cycle.
func ErrorPanel(err error) Panel {
	return Panel{Title: "Smart Reader error", Body: ErrorMessage(err), Kind: KindError}
}

// ErrorMessage turns a cycle error into the text shown to the user.
func ErrorMessage(err error) string {
	var be *models.BackendError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, models.ErrExtractionFailed):
		return "Could not find readable text on this page."
	case errors.Is(err, models.ErrTooShortToSummarize):
		return "Not enough text on this page to summarize."
	case errors.Is(err, models.ErrBackendUnreachable):
		return "Could not reach the summarization service: " + err.Error()
	case errors.As(err, &be):
		return be.Error()
	case errors.Is(err, models.ErrMalformedResponse):
		return "The summarization service returned an unexpected response."
	}
	return err.Error()
}

// Presenter shows and dismisses panels. Showing a panel replaces any panel
// already open.
type Presenter interface {
	Show(ctx context.Context, p Panel) error
	Dismiss(ctx context.Context) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// CopiedMessage is reported after a successful copy.
const CopiedMessage = "Copied"

// ManualCopyMessage is the prompt shown when the clipboard is unavailable.
const ManualCopyMessage = "Copy failed. Select the text and copy it manually."

// CopyOutcome is the result of the copy action.
type CopyOutcome struct {
	Copied  bool
	Message string
	Err     error
}

// CopyBody copies the panel body. Failures are reported in the outcome and
// wrap models.ErrClipboardFailed.
func CopyBody(ctx context.Context, cb Clipboard, p Panel) CopyOutcome {
	if cb == nil {
		return CopyOutcome{Message: ManualCopyMessage, Err: models.ErrClipboardFailed}
	}
	if err := cb.Copy(ctx, p.Body); err != nil {
		return CopyOutcome{Message: ManualCopyMessage, Err: fmt.Errorf("%w: %v", models.ErrClipboardFailed, err)}
	}
	return CopyOutcome{Copied: true, Message: CopiedMessage}
}

// Terminal writes panels to a stream.
type Terminal struct {
	mu  sync.Mutex
	w   io.Writer
	cur *Panel
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Show(_ context.Context, p Panel) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = &p

	rule := strings.Repeat("─", max(len([]rune(p.Title)), 40))
	var b strings.Builder
	b.WriteString(rule + "\n")
	if p.Kind == KindError {
		b.WriteString("! ")
	}
	b.WriteString(p.Title + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(p.Body)
	if !strings.HasSuffix(p.Body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(rule + "\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Terminal) Dismiss(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = nil
	return nil
}

// Current returns the panel on screen, if any.
func (t *Terminal) Current() (Panel, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur == nil {
		return Panel{}, false
	}
	return *t.cur, true
}
