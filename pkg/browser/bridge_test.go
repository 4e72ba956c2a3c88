package browser

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/smart-reader/pkg/placement"
)

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent(`{"type":"pointermove","x":12.5,"y":40}`)
	require.NoError(t, err)
	assert.Equal(t, Event{Type: "pointermove", X: 12.5, Y: 40}, ev)

	_, err = DecodeEvent(`{"x":1}`)
	assert.Error(t, err)

	_, err = DecodeEvent(`not json`)
	assert.Error(t, err)
}

func TestEvent_Signal(t *testing.T) {
	sig, ok := Event{Type: "pointerdown", X: 3, Y: 4}.Signal()
	require.True(t, ok)
	assert.Equal(t, placement.PointerDown, sig.Kind)
	assert.Equal(t, placement.Point{X: 3, Y: 4}, sig.At)

	_, ok = Event{Type: EventClick}.Signal()
	assert.False(t, ok)
}

type fakeEngine struct {
	mu      sync.Mutex
	signals []placement.Signal
	resets  int
	err     error
}

func (f *fakeEngine) Handle(sig placement.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals = append(f.signals, sig)
	return f.err
}

func (f *fakeEngine) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return f.err
}

func newTestBridge(eng *fakeEngine) (*bridge, chan struct{}, *int) {
	activated := make(chan struct{}, 4)
	copies := 0
	b := &bridge{
		engine:   eng,
		activate: func(context.Context) { activated <- struct{}{} },
		copy:     func(context.Context) { copies++ },
		logger:   slog.New(slog.DiscardHandler),
	}
	return b, activated, &copies
}

func TestBridge_Dispatch(t *testing.T) {
	eng := &fakeEngine{}
	b, activated, copies := newTestBridge(eng)
	ctx := context.Background()

	b.dispatch(ctx, `{"type":"scroll"}`)
	b.dispatch(ctx, `{"type":"pointerup","x":5,"y":6}`)
	b.dispatch(ctx, `{"type":"ready"}`)
	b.dispatch(ctx, `{"type":"copy"}`)
	b.dispatch(ctx, `{"type":"click"}`)
	b.dispatch(ctx, `{"type":"bogus"}`)
	b.dispatch(ctx, `garbage`)

	select {
	case <-activated:
	case <-time.After(time.Second):
		t.Fatal("click did not activate")
	}

	eng.mu.Lock()
	defer eng.mu.Unlock()
	require.Len(t, eng.signals, 2)
	assert.Equal(t, placement.Scroll, eng.signals[0].Kind)
	assert.Equal(t, placement.PointerUp, eng.signals[1].Kind)
	assert.Equal(t, placement.Point{X: 5, Y: 6}, eng.signals[1].At)
	assert.Equal(t, 1, eng.resets)
	assert.Equal(t, 1, *copies)
}

func TestBridge_EngineErrorsDoNotStopRun(t *testing.T) {
	eng := &fakeEngine{err: errors.New("detached")}
	b, _, _ := newTestBridge(eng)

	payloads := make(chan string, 3)
	payloads <- `{"type":"resize"}`
	payloads <- `{"type":"mutation"}`
	close(payloads)
	b.run(context.Background(), payloads)

	assert.Len(t, eng.signals, 2)
}

func TestEmbeddedScripts(t *testing.T) {
	assert.Contains(t, controlJS, "window.__smartReader")
	assert.Contains(t, controlJS, bindingName)
	// Eval needs a bare function expression.
	for name, js := range map[string]string{"snapshot": snapshotJS, "clickables": clickablesJS} {
		trimmed := strings.TrimSpace(js)
		assert.True(t, strings.HasPrefix(trimmed, "("), "%s must start with a function", name)
	}
}
