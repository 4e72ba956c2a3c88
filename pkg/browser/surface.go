package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dtnitsch/smart-reader/pkg/overlay"
	"github.com/dtnitsch/smart-reader/pkg/placement"
)

var errNotMounted = errors.New("browser: control not mounted")

// Surface drives the injected control for the placement engine.
type Surface struct {
	tab *Tab
}

var _ placement.Surface = (*Surface)(nil)

func NewSurface(t *Tab) *Surface {
	return &Surface{tab: t}
}

func (s *Surface) size(method string) placement.Size {
	res, err := s.tab.call(method)
	if err != nil {
		s.tab.logger.Debug("Failed to measure", "method", method, "error", err)
		return placement.Size{}
	}
	return placement.Size{W: res.Value.Get("w").Num(), H: res.Value.Get("h").Num()}
}

func (s *Surface) Viewport() placement.Size    { return s.size("viewport") }
func (s *Surface) ControlSize() placement.Size { return s.size("controlSize") }

func (s *Surface) Apply(pos placement.Position) error {
	res, err := s.tab.call("apply", pos.Corner.String(), pos.Offset.X, pos.Offset.Y)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return errNotMounted
	}
	return nil
}

func (s *Surface) HitTest(pt placement.Point) (bool, error) {
	res, err := s.tab.call("hitTest", pt.X, pt.Y)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (s *Surface) Mount() error {
	res, err := s.tab.call("mount")
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return fmt.Errorf("browser: document has no body yet")
	}
	return nil
}

func (s *Surface) Unmount() error {
	_, err := s.tab.call("unmount")
	return err
}

// SetBusy disables the control while a cycle runs.
func (s *Surface) SetBusy(busy bool) error {
	_, err := s.tab.call("setBusy", busy)
	return err
}

// Presenter renders panels inside the page.
type Presenter struct {
	tab *Tab

	mu      sync.Mutex
	current *overlay.Panel
}

var _ overlay.Presenter = (*Presenter)(nil)

func NewPresenter(t *Tab) *Presenter {
	return &Presenter{tab: t}
}

func (p *Presenter) Show(_ context.Context, panel overlay.Panel) error {
	res, err := p.tab.call("showPanel", panel.Title, panel.Body, string(panel.Kind))
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return errNotMounted
	}
	p.mu.Lock()
	p.current = &panel
	p.mu.Unlock()
	return nil
}

func (p *Presenter) Dismiss(_ context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	_, err := p.tab.call("dismissPanel")
	return err
}

// Current returns the panel on screen, if any.
func (p *Presenter) Current() (overlay.Panel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return overlay.Panel{}, false
	}
	return *p.current, true
}

// CopyResult reports a Go-side copy outcome to the panel.
func (p *Presenter) CopyResult(out overlay.CopyOutcome) error {
	_, err := p.tab.call("copyResult", out.Copied, out.Message)
	return err
}
