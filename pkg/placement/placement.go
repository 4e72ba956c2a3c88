// Package placement keeps the floating control somewhere the user can click
// it. The engine tries the four viewport corners, then slides up from the
// bottom-right corner, and re-runs that search whenever the page scrolls,
// resizes or mutates. A position the user dragged the control to is
// revalidated before any search.
package placement

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Corner anchors a Position to one viewport corner.
type Corner int

const (
	BottomRight Corner = iota
	BottomLeft
	TopRight
	TopLeft
	// Custom offsets are measured from the left and top edges.
	Custom
)

var cornerNames = map[Corner]string{
	BottomRight: "bottom-right",
	BottomLeft:  "bottom-left",
	TopRight:    "top-right",
	TopLeft:     "top-left",
	Custom:      "custom",
}

func (c Corner) String() string {
	if n, ok := cornerNames[c]; ok {
		return n
	}
	return fmt.Sprintf("corner(%d)", int(c))
}

// cornerOrder is the search priority.
var cornerOrder = []Corner{BottomRight, BottomLeft, TopRight, TopLeft}

// Point is a viewport coordinate or an offset pair.
type Point struct {
	X, Y float64
}

// Size is a width and height in viewport units.
type Size struct {
	W, H float64
}

// Position places the control: Offset is the distance from the edges that
// meet at Corner.
type Position struct {
	Corner Corner
	Offset Point
}

// Origin returns the control's top-left point for the given viewport and
// control size.
func (p Position) Origin(viewport, control Size) Point {
	switch p.Corner {
	case BottomRight:
		return Point{viewport.W - p.Offset.X - control.W, viewport.H - p.Offset.Y - control.H}
	case BottomLeft:
		return Point{p.Offset.X, viewport.H - p.Offset.Y - control.H}
	case TopRight:
		return Point{viewport.W - p.Offset.X - control.W, p.Offset.Y}
	default:
		return Point{p.Offset.X, p.Offset.Y}
	}
}

// Center is the point sampled by the clickability hit-test.
func (p Position) Center(viewport, control Size) Point {
	o := p.Origin(viewport, control)
	return Point{o.X + control.W/2, o.Y + control.H/2}
}

// Surface is the host environment's view of the control.
type Surface interface {
	Viewport() Size
	ControlSize() Size
	// Apply moves the control to pos.
	Apply(pos Position) error
	// HitTest reports whether the topmost element at pt is the control or
	// lies inside it.
	HitTest(pt Point) (bool, error)
	Mount() error
	Unmount() error
}

// State is the engine's lifecycle state.
type State int

const (
	Unplaced State = iota
	Placed
	Dragging
	Hidden
)

func (s State) String() string {
	switch s {
	case Unplaced:
		return "unplaced"
	case Placed:
		return "placed"
	case Dragging:
		return "dragging"
	case Hidden:
		return "hidden"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Status is a point-in-time view of the engine.
type Status struct {
	State    State
	Position Position
	// UserPlaced is set once the user has dragged the control.
	UserPlaced bool
}

// Visible reports whether the control is mounted on the page.
func (s Status) Visible() bool {
	return s.State != Hidden && s.State != Unplaced
}

// Defaults for the corner margin and the upward slide.
const (
	DefaultMargin        = 20
	DefaultSlideStep     = 100
	DefaultSlideAttempts = 8
)

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithMargin(m float64) Option {
	return func(e *Engine) { e.margin = m }
}

// WithSlide sets the fallback step and the number of attempts.
func WithSlide(step float64, attempts int) Option {
	return func(e *Engine) {
		e.step = step
		e.attempts = attempts
	}
}

// Engine drives a Surface through the placement state machine. It is safe
// for concurrent use.
type Engine struct {
	mu      sync.Mutex
	surface Surface
	logger  *slog.Logger

	margin   float64
	step     float64
	attempts int

	enabled bool
	state   State
	pos     Position
	userPos *Position

	dragFrom    Point
	dragPointer Point
	dragStart   Position
	dragMoved   bool
}

// New returns an engine in the Unplaced state. Nothing touches the surface
// until Start.
func New(surface Surface, enabled bool, opts ...Option) *Engine {
	e := &Engine{
		surface:  surface,
		logger:   slog.Default(),
		margin:   DefaultMargin,
		step:     DefaultSlideStep,
		attempts: DefaultSlideAttempts,
		enabled:  enabled,
		state:    Unplaced,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.attempts < 1 {
		e.attempts = 1
	}
	return e
}

// Start mounts and places the control, or enters Hidden when disabled.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		e.state = Hidden
		return nil
	}
	return e.show()
}

// SetEnabled applies a preference change. Disabling unmounts the control;
// enabling rebuilds it from Unplaced.
func (e *Engine) SetEnabled(enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled == enabled && e.state != Unplaced {
		return nil
	}
	e.enabled = enabled
	if !enabled {
		return e.hide()
	}
	return e.show()
}

// Reset rebuilds the control from Unplaced, as after a page load. The
// user's dragged position is forgotten.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		e.state = Hidden
		e.userPos = nil
		return nil
	}
	return e.show()
}

// Status returns the current state and position.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{State: e.state, Position: e.pos, UserPlaced: e.userPos != nil}
}

// Handle applies one signal.
func (e *Engine) Handle(sig Signal) error {
	switch sig.Kind {
	case Enable:
		return e.SetEnabled(true)
	case Disable:
		return e.SetEnabled(false)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch sig.Kind {
	case Scroll, Resize, Mutation:
		if e.state != Placed {
			return nil
		}
		e.place()
	case PointerDown:
		e.beginDrag(sig.At)
	case PointerMove:
		e.moveDrag(sig.At)
	case PointerUp:
		e.endDrag(sig.At)
	default:
		return fmt.Errorf("unknown signal kind %d", int(sig.Kind))
	}
	return nil
}

// Run handles signals until ctx is done or the channel closes. Handler
// errors are logged and do not stop the loop.
func (e *Engine) Run(ctx context.Context, signals <-chan Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if err := e.Handle(sig); err != nil {
				e.logger.Warn("Placement signal failed", "signal", sig.Kind.String(), "error", err)
			}
		}
	}
}

func (e *Engine) show() error {
	e.state = Unplaced
	e.userPos = nil
	if err := e.surface.Mount(); err != nil {
		return fmt.Errorf("failed to mount control: %w", err)
	}
	e.state = Placed
	e.place()
	return nil
}

func (e *Engine) hide() error {
	prev := e.state
	e.state = Hidden
	e.userPos = nil
	if prev == Hidden || prev == Unplaced {
		return nil
	}
	if err := e.surface.Unmount(); err != nil {
		return fmt.Errorf("failed to unmount control: %w", err)
	}
	return nil
}

// place runs the search and leaves the control at the result. It never
// fails: when nothing passes, the last slide offset is kept.
func (e *Engine) place() {
	if e.userPos != nil {
		if e.try(*e.userPos) {
			return
		}
		e.logger.Debug("User position no longer clickable", "offset", e.userPos.Offset)
	}

	for _, c := range cornerOrder {
		if e.try(Position{Corner: c, Offset: Point{e.margin, e.margin}}) {
			return
		}
	}

	for i := 1; i <= e.attempts; i++ {
		pos := Position{Corner: BottomRight, Offset: Point{e.margin, e.margin + e.step*float64(i)}}
		if e.try(pos) {
			return
		}
	}
	e.logger.Debug("No clickable position found", "position", e.pos.Corner.String(), "offset", e.pos.Offset)
}

// try applies pos and hit-tests it. Surface errors count as a failed test.
func (e *Engine) try(pos Position) bool {
	e.pos = pos
	if err := e.surface.Apply(pos); err != nil {
		e.logger.Debug("Failed to apply position", "corner", pos.Corner.String(), "error", err)
		return false
	}
	center := pos.Center(e.surface.Viewport(), e.surface.ControlSize())
	ok, err := e.surface.HitTest(center)
	if err != nil {
		e.logger.Debug("Hit-test failed", "corner", pos.Corner.String(), "error", err)
		return false
	}
	return ok
}

func (e *Engine) beginDrag(at Point) {
	if e.state != Placed {
		return
	}
	if ok, err := e.surface.HitTest(at); err != nil || !ok {
		return
	}
	e.dragStart = e.pos
	e.dragMoved = false
	e.dragFrom = e.pos.Origin(e.surface.Viewport(), e.surface.ControlSize())
	e.dragPointer = at
	e.pos = Position{Corner: Custom, Offset: e.dragFrom}
	e.state = Dragging
}

func (e *Engine) moveDrag(at Point) {
	if e.state != Dragging {
		return
	}
	if at != e.dragPointer {
		e.dragMoved = true
	}
	e.pos = Position{Corner: Custom, Offset: Point{
		X: max(0, e.dragFrom.X+at.X-e.dragPointer.X),
		Y: max(0, e.dragFrom.Y+at.Y-e.dragPointer.Y),
	}}
	if err := e.surface.Apply(e.pos); err != nil {
		e.logger.Debug("Failed to apply drag position", "error", err)
	}
}

func (e *Engine) endDrag(at Point) {
	if e.state != Dragging {
		return
	}
	if !e.dragMoved && at == e.dragPointer {
		// A press without movement is a click: keep the anchored position.
		e.pos = e.dragStart
		e.state = Placed
		e.place()
		return
	}
	e.moveDrag(at)
	user := e.pos
	e.userPos = &user
	e.state = Placed
	e.place()
}
