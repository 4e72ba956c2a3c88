package page

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Static is a Page over a parsed HTML document with no script engine.
// Activation is limited to what markup alone can express: opening a
// <details> element and revealing the target of aria-controls.
type Static struct {
	doc *goquery.Document
	url *url.URL
}

// NewStatic parses r as HTML.
func NewStatic(r io.Reader, pageURL *url.URL) (*Static, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc, pageURL), nil
}

// FromDocument wraps an already parsed document.
func FromDocument(doc *goquery.Document, pageURL *url.URL) *Static {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	doc.Url = pageURL
	return &Static{doc: doc, url: pageURL}
}

func (p *Static) URL() *url.URL { return p.url }

// Snapshot returns the parsed document itself.
func (p *Static) Snapshot(_ context.Context) (*goquery.Document, error) {
	return p.doc, nil
}

func (p *Static) Clickables(_ context.Context) ([]Clickable, error) {
	var out []Clickable
	p.doc.Find(ClickableSelector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &staticClickable{doc: p.doc, sel: s})
	})
	return out, nil
}

type staticClickable struct {
	doc *goquery.Document
	sel *goquery.Selection
}

func (c *staticClickable) Label() string { return Label(c.sel) }

func (c *staticClickable) Activate(_ context.Context) error {
	if goquery.NodeName(c.sel) == "summary" {
		details := c.sel.ParentsFiltered("details").First()
		if details.Length() > 0 {
			details.SetAttr("open", "")
			return nil
		}
	}
	if controls, ok := c.sel.Attr("aria-controls"); ok && strings.TrimSpace(controls) != "" {
		revealed := 0
		for _, id := range strings.Fields(controls) {
			target := c.doc.Find("#" + id)
			if target.Length() == 0 {
				continue
			}
			target.RemoveAttr("hidden")
			target.RemoveAttr("aria-hidden")
			revealed++
		}
		if revealed > 0 {
			c.sel.SetAttr("aria-expanded", "true")
			return nil
		}
	}
	return ErrNotActivatable
}
