package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/smart-reader/pkg/overlay"
	"github.com/dtnitsch/smart-reader/pkg/placement"
)

// Event is one message sent by the control through the binding.
type Event struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Control-only event types. Everything else maps to a placement signal.
const (
	EventClick = "click"
	EventCopy  = "copy"
	EventReady = "ready"
)

// DecodeEvent parses a binding payload.
func DecodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("browser: decode event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("browser: event without type: %s", payload)
	}
	return ev, nil
}

// Signal converts a page or pointer event to a placement signal.
func (e Event) Signal() (placement.Signal, bool) {
	kind, ok := placement.ParseSignalKind(e.Type)
	if !ok {
		return placement.Signal{}, false
	}
	return placement.Signal{Kind: kind, At: placement.Point{X: e.X, Y: e.Y}}, true
}

// signalHandler is the part of the placement engine the bridge drives.
type signalHandler interface {
	Handle(sig placement.Signal) error
	Reset() error
}

// bridge routes decoded events. Activation runs in its own goroutine so
// placement keeps tracking the page during a cycle.
type bridge struct {
	engine   signalHandler
	activate func(ctx context.Context)
	copy     func(ctx context.Context)
	logger   *slog.Logger
}

func (b *bridge) dispatch(ctx context.Context, payload string) {
	ev, err := DecodeEvent(payload)
	if err != nil {
		b.logger.Debug("Dropping control event", "error", err)
		return
	}

	switch ev.Type {
	case EventClick:
		go b.activate(ctx)
	case EventCopy:
		b.copy(ctx)
	case EventReady:
		if err := b.engine.Reset(); err != nil {
			b.logger.Warn("Failed to place control after load", "error", err)
		}
	default:
		sig, ok := ev.Signal()
		if !ok {
			b.logger.Debug("Unknown control event", "type", ev.Type)
			return
		}
		if err := b.engine.Handle(sig); err != nil {
			b.logger.Warn("Placement signal failed", "signal", ev.Type, "error", err)
		}
	}
}

// run dispatches payloads until ctx is done or the channel closes.
func (b *bridge) run(ctx context.Context, payloads <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-payloads:
			if !ok {
				return
			}
			b.dispatch(ctx, p)
		}
	}
}

// statusReader reports the placement state.
type statusReader interface {
	Status() placement.Status
}

// gatedPresenter drops panels while the control is hidden, so a cycle that
// finishes after the user disabled the control shows nothing.
type gatedPresenter struct {
	inner  overlay.Presenter
	engine statusReader
	logger *slog.Logger
}

func (g *gatedPresenter) Show(ctx context.Context, p overlay.Panel) error {
	if g.engine.Status().State == placement.Hidden {
		g.logger.Debug("Panel suppressed while control is hidden", "title", p.Title)
		return nil
	}
	return g.inner.Show(ctx, p)
}

func (g *gatedPresenter) Dismiss(ctx context.Context) error {
	return g.inner.Dismiss(ctx)
}
