package placement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rect struct{ x, y, w, h float64 }

func (r rect) contains(p Point) bool {
	return p.X >= r.x && p.X < r.x+r.w && p.Y >= r.y && p.Y < r.y+r.h
}

type fakeSurface struct {
	viewport  Size
	control   Size
	occluders []rect

	applied  Position
	mounted  bool
	mounts   int
	unmounts int
	hits     []Point
	applyErr error
}

func newFakeSurface(occluders ...rect) *fakeSurface {
	return &fakeSurface{viewport: Size{1000, 800}, control: Size{60, 40}, occluders: occluders}
}

func (f *fakeSurface) Viewport() Size    { return f.viewport }
func (f *fakeSurface) ControlSize() Size { return f.control }

func (f *fakeSurface) Apply(pos Position) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = pos
	return nil
}

func (f *fakeSurface) HitTest(pt Point) (bool, error) {
	f.hits = append(f.hits, pt)
	for _, o := range f.occluders {
		if o.contains(pt) {
			return false, nil
		}
	}
	origin := f.applied.Origin(f.viewport, f.control)
	return rect{origin.X, origin.Y, f.control.W, f.control.H}.contains(pt), nil
}

func (f *fakeSurface) Mount() error {
	f.mounted = true
	f.mounts++
	return nil
}

func (f *fakeSurface) Unmount() error {
	f.mounted = false
	f.unmounts++
	return nil
}

func corner(c Corner) Position {
	return Position{Corner: c, Offset: Point{DefaultMargin, DefaultMargin}}
}

func TestPosition_Center(t *testing.T) {
	vp, ctl := Size{1000, 800}, Size{60, 40}
	tests := []struct {
		pos  Position
		want Point
	}{
		{corner(BottomRight), Point{950, 760}},
		{corner(BottomLeft), Point{50, 760}},
		{corner(TopRight), Point{950, 40}},
		{corner(TopLeft), Point{50, 40}},
		{Position{Corner: Custom, Offset: Point{100, 200}}, Point{130, 220}},
	}
	for _, tt := range tests {
		t.Run(tt.pos.Corner.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.Center(vp, ctl))
		})
	}
}

func TestStart_FirstCornerWins(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	st := e.Status()
	assert.Equal(t, Placed, st.State)
	assert.Equal(t, corner(BottomRight), st.Position)
	assert.True(t, st.Visible())
	assert.True(t, s.mounted)
}

func TestStart_OccludedCornerSkipped(t *testing.T) {
	// Cookie banner along the bottom edge.
	s := newFakeSurface(rect{0, 700, 1000, 100})
	e := New(s, true)
	require.NoError(t, e.Start())
	assert.Equal(t, corner(TopRight), e.Status().Position)

	// A sticky corner widget only covers bottom-right.
	s = newFakeSurface(rect{900, 700, 100, 100})
	e = New(s, true)
	require.NoError(t, e.Start())
	assert.Equal(t, corner(BottomLeft), e.Status().Position)
}

func TestStart_SlideFallback(t *testing.T) {
	s := newFakeSurface(
		rect{0, 0, 1000, 100},   // header
		rect{0, 720, 1000, 80},  // footer bar
		rect{900, 600, 100, 80}, // first slide step
	)
	e := New(s, true)
	require.NoError(t, e.Start())

	st := e.Status()
	assert.Equal(t, Placed, st.State)
	assert.Equal(t, Position{Corner: BottomRight, Offset: Point{20, 220}}, st.Position)

	ok, err := s.HitTest(st.Position.Center(s.viewport, s.control))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStart_EverythingOccludedSettlesAtLastOffset(t *testing.T) {
	s := newFakeSurface(rect{-10000, -10000, 20000, 20000})
	e := New(s, true)
	require.NoError(t, e.Start())

	st := e.Status()
	assert.Equal(t, Placed, st.State)
	want := Position{Corner: BottomRight, Offset: Point{20, 20 + DefaultSlideStep*DefaultSlideAttempts}}
	assert.Equal(t, want, st.Position)
	assert.Equal(t, want, s.applied)
	assert.Len(t, s.hits, len(cornerOrder)+DefaultSlideAttempts)
}

func TestStart_ApplyErrorsAreSwallowed(t *testing.T) {
	s := newFakeSurface()
	s.applyErr = errors.New("detached")
	e := New(s, true, WithSlide(50, 2))
	require.NoError(t, e.Start())
	assert.Equal(t, Placed, e.Status().State)
	assert.Empty(t, s.hits)
}

func TestDrag_ThenScrollKeepsUserPosition(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))
	assert.Equal(t, Dragging, e.Status().State)
	require.NoError(t, e.Handle(Signal{Kind: PointerMove, At: Point{800, 600}}))
	require.NoError(t, e.Handle(Signal{Kind: PointerUp, At: Point{650, 560}}))

	custom := Position{Corner: Custom, Offset: Point{620, 540}}
	st := e.Status()
	assert.Equal(t, Placed, st.State)
	assert.True(t, st.UserPlaced)
	assert.Equal(t, custom, st.Position)

	s.hits = nil
	require.NoError(t, e.Handle(Signal{Kind: Scroll}))
	assert.Equal(t, custom, e.Status().Position)
	require.Len(t, s.hits, 1, "only the user position is revalidated")
	assert.Equal(t, Point{650, 560}, s.hits[0])

	// An ad lands on top of the user position.
	s.occluders = []rect{{600, 500, 100, 100}}
	require.NoError(t, e.Handle(Signal{Kind: Mutation}))
	assert.Equal(t, corner(BottomRight), e.Status().Position)
}

func TestDrag_ClampedAtZero(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))
	require.NoError(t, e.Handle(Signal{Kind: PointerUp, At: Point{-5000, -5000}}))
	assert.Equal(t, Position{Corner: Custom, Offset: Point{0, 0}}, e.Status().Position)
}

func TestDrag_ClickWithoutMovementKeepsCorner(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))
	require.NoError(t, e.Handle(Signal{Kind: PointerUp, At: Point{950, 760}}))

	st := e.Status()
	assert.Equal(t, Placed, st.State)
	assert.False(t, st.UserPlaced)
	assert.Equal(t, corner(BottomRight), st.Position)

	require.NoError(t, e.Handle(Signal{Kind: Resize}))
	assert.Equal(t, corner(BottomRight), e.Status().Position)
}

func TestDrag_PointerDownOffControlIgnored(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{10, 10}}))
	assert.Equal(t, Placed, e.Status().State)
	require.NoError(t, e.Handle(Signal{Kind: PointerMove, At: Point{20, 20}}))
	assert.Equal(t, corner(BottomRight), e.Status().Position)
}

func TestDrag_PageSignalsIgnoredWhileDragging(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())
	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))

	s.hits = nil
	require.NoError(t, e.Handle(Signal{Kind: Resize}))
	assert.Empty(t, s.hits)
	assert.Equal(t, Dragging, e.Status().State)
}

func TestEnabledToggle(t *testing.T) {
	s := newFakeSurface()
	e := New(s, false)
	require.NoError(t, e.Start())
	assert.Equal(t, Hidden, e.Status().State)
	assert.False(t, s.mounted)

	require.NoError(t, e.Handle(Signal{Kind: Scroll}))
	assert.Empty(t, s.hits)

	require.NoError(t, e.Handle(Signal{Kind: Enable}))
	assert.Equal(t, Placed, e.Status().State)
	assert.True(t, s.mounted)

	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))
	require.NoError(t, e.Handle(Signal{Kind: PointerUp, At: Point{900, 700}}))
	assert.True(t, e.Status().UserPlaced)

	require.NoError(t, e.Handle(Signal{Kind: Disable}))
	assert.Equal(t, Hidden, e.Status().State)
	assert.False(t, s.mounted)
	assert.Equal(t, 1, s.unmounts)

	require.NoError(t, e.SetEnabled(true))
	st := e.Status()
	assert.False(t, st.UserPlaced, "re-enable rebuilds from scratch")
	assert.Equal(t, corner(BottomRight), st.Position)
	assert.Equal(t, 2, s.mounts)
}

func TestRun_StopsWhenChannelCloses(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())

	ch := make(chan Signal, 3)
	ch <- Signal{Kind: Scroll}
	ch <- Signal{Kind: SignalKind(99)}
	ch <- Signal{Kind: Disable}
	close(ch)

	require.NoError(t, e.Run(context.Background(), ch))
	assert.Equal(t, Hidden, e.Status().State)
}

func TestRun_ContextCancel(t *testing.T) {
	e := New(newFakeSurface(), true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx, make(chan Signal)), context.Canceled)
}

func TestParseSignalKind(t *testing.T) {
	k, ok := ParseSignalKind("mutation")
	assert.True(t, ok)
	assert.Equal(t, Mutation, k)
	_, ok = ParseSignalKind("wheel")
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s := newFakeSurface()
	e := New(s, true)
	require.NoError(t, e.Start())
	require.NoError(t, e.Handle(Signal{Kind: PointerDown, At: Point{950, 760}}))
	require.NoError(t, e.Handle(Signal{Kind: PointerUp, At: Point{500, 500}}))
	require.True(t, e.Status().UserPlaced)

	require.NoError(t, e.Reset())
	st := e.Status()
	assert.False(t, st.UserPlaced)
	assert.Equal(t, corner(BottomRight), st.Position)
	assert.Equal(t, 2, s.mounts)

	require.NoError(t, e.SetEnabled(false))
	require.NoError(t, e.Reset())
	assert.Equal(t, Hidden, e.Status().State)
	assert.Equal(t, 2, s.mounts)
}
