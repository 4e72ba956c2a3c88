// Package extractors holds dedicated extractors for site families whose
// markup the generic scanner handles poorly.
package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/collector"
	"github.com/dtnitsch/smart-reader/pkg/detector"
	"github.com/dtnitsch/smart-reader/pkg/noise"
)

// Result is what a site extractor found. Either field may be empty.
type Result struct {
	Title string
	Text  string
}

// Extractor pulls the article of one site family out of a document snapshot.
type Extractor interface {
	Extract(doc *goquery.Document) Result
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(doc *goquery.Document) Result

func (f ExtractorFunc) Extract(doc *goquery.Document) Result { return f(doc) }

var registry = map[detector.SiteID]Extractor{
	detector.Reddit:    ExtractorFunc(ExtractReddit),
	detector.Wikipedia: ExtractorFunc(ExtractWiki),
}

// For returns the extractor registered for family.
func For(family detector.SiteFamily) (Extractor, bool) {
	if !family.Known() {
		return nil, false
	}
	e, ok := registry[family.ID]
	return e, ok
}

// textOf collects the content elements of s, falling back to its whole
// rendered text when it has none (rich-text bodies built from bare divs).
func textOf(s *goquery.Selection) string {
	if text := collector.Collect(s); text != "" {
		return text
	}
	text := strings.TrimSpace(s.Text())
	if noise.IsNoise(text) {
		return ""
	}
	return collector.CollapseBlankLines(text)
}

// firstText returns the text of the first selector that yields any.
func firstText(root *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		found := ""
		root.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = textOf(s)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
