package browser

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/page"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// bindingName is the runtime binding the control reports events through.
const bindingName = "__smartReaderBinding"

//go:embed js/control.js
var controlJS string

// snapshotJS serializes the document with open shadow roots written as
// declarative templates.
//
//go:embed js/snapshot.js
var snapshotJS string

// clickablesJS collects clickable elements, shadow trees included, and
// returns their labels.
//
//go:embed js/clickables.js
var clickablesJS string

const activateJS = `(i) => {
	const el = (window.__smartReaderClickables || [])[i];
	if (!el || !el.isConnected) return false;
	el.click();
	return true;
}`

const callJS = `(method, args) => {
	const c = window.__smartReader;
	if (!c) throw new Error('control not injected');
	return c[method](...args);
}`

// errDetached is returned when a clickable left the document before activation.
var errDetached = errors.New("element is no longer in the document")

// Tab is a browser tab that implements page.Page.
type Tab struct {
	page   *rod.Page
	logger *slog.Logger
}

var _ page.Page = (*Tab)(nil)

// install registers the binding and the control script for every document
// the tab loads.
func (t *Tab) install() error {
	if err := (proto.RuntimeAddBinding{Name: bindingName}).Call(t.page); err != nil {
		return fmt.Errorf("browser: add binding: %w", err)
	}
	if _, err := t.page.EvalOnNewDocument(controlJS); err != nil {
		return fmt.Errorf("browser: inject control: %w", err)
	}
	return nil
}

// Inject runs the control script in the current document. It is a no-op
// when the control is already present.
func (t *Tab) Inject(ctx context.Context) error {
	_, err := proto.RuntimeEvaluate{Expression: controlJS}.Call(t.page.Context(ctx))
	if err != nil {
		return fmt.Errorf("browser: inject control: %w", err)
	}
	return nil
}

func (t *Tab) URL() *url.URL {
	info, err := t.page.Info()
	if err != nil {
		t.logger.Debug("Failed to read tab info", "error", err)
		return &url.URL{}
	}
	u, err := url.Parse(info.URL)
	if err != nil {
		return &url.URL{}
	}
	return u
}

func (t *Tab) Clickables(ctx context.Context) ([]page.Clickable, error) {
	res, err := t.page.Context(ctx).Eval(clickablesJS, page.ClickableSelector)
	if err != nil {
		return nil, fmt.Errorf("browser: list clickables: %w", err)
	}
	labels := res.Value.Arr()
	out := make([]page.Clickable, len(labels))
	for i, l := range labels {
		out[i] = &liveClickable{tab: t, idx: i, label: strings.Join(strings.Fields(l.Str()), " ")}
	}
	return out, nil
}

// Snapshot serializes the live document and parses it. The result is
// detached from the page.
func (t *Tab) Snapshot(ctx context.Context) (*goquery.Document, error) {
	res, err := t.page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Value.Str()))
	if err != nil {
		return nil, fmt.Errorf("browser: parse snapshot: %w", err)
	}
	doc.Url = t.URL()
	return doc, nil
}

// call invokes a method of the injected control.
func (t *Tab) call(method string, args ...any) (*proto.RuntimeRemoteObject, error) {
	if args == nil {
		args = []any{}
	}
	res, err := t.page.Eval(callJS, method, args)
	if err != nil {
		return nil, fmt.Errorf("browser: control %s: %w", method, err)
	}
	return res, nil
}

// Close closes the tab.
func (t *Tab) Close() error {
	if t.page != nil {
		return t.page.Close()
	}
	return nil
}

type liveClickable struct {
	tab   *Tab
	idx   int
	label string
}

func (c *liveClickable) Label() string { return c.label }

func (c *liveClickable) Activate(ctx context.Context) error {
	res, err := c.tab.page.Context(ctx).Eval(activateJS, c.idx)
	if err != nil {
		return fmt.Errorf("browser: click %q: %w", c.label, err)
	}
	if !res.Value.Bool() {
		return errDetached
	}
	return nil
}
