// Package page abstracts the document an extraction cycle works on. A host
// (a fetched HTML document, or a tab in a live browser) supplies the page URL,
// the clickable elements that may reveal collapsed text, and a read-only
// snapshot of the document for measurement.
package page

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ClickableSelector matches elements that can be activated by a user.
const ClickableSelector = `button,a,summary,[role="button"],[aria-expanded]`

// ErrNotActivatable is returned when a host cannot activate an element.
var ErrNotActivatable = errors.New("element cannot be activated without a script host")

// Clickable is an element that can be activated.
type Clickable interface {
	// Label is the visible text, or the accessible name when there is none.
	Label() string
	Activate(ctx context.Context) error
}

// Page is the document under extraction.
type Page interface {
	URL() *url.URL
	Clickables(ctx context.Context) ([]Clickable, error)
	// Snapshot returns the document as it is now. Callers must not mutate it.
	Snapshot(ctx context.Context) (*goquery.Document, error)
}

// Title returns the document title of a snapshot.
func Title(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// Label computes the visible label of s, falling back to aria-label and title.
func Label(s *goquery.Selection) string {
	if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
		return text
	}
	for _, attr := range []string{"aria-label", "title", "value"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
