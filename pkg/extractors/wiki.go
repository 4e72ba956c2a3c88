package extractors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/collector"
)

var (
	wikiBodySelectors = []string{
		"#mw-content-text .mw-parser-output",
		"#mw-content-text",
		"#bodyContent",
	}

	// Sections after which the article body is over.
	wikiTrailingSections = map[string]struct{}{
		"references":      {},
		"notes":           {},
		"see also":        {},
		"external links":  {},
		"further reading": {},
		"bibliography":    {},
		"sources":         {},
	}

	citationPattern = regexp.MustCompile(`\[(?:\d+|[a-z]|edit|citation needed|note \d+)\]`)
)

// ExtractWiki reads the body of a Wikipedia article up to its reference
// sections. Only direct children of the body are read, so infoboxes and
// navboxes are skipped.
func ExtractWiki(doc *goquery.Document) Result {
	if doc == nil {
		return Result{}
	}
	res := Result{Title: squash(doc.Find("#firstHeading").First().Text())}

	var body *goquery.Selection
	for _, sel := range wikiBodySelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			body = s
			break
		}
	}
	if body == nil {
		return res
	}

	var parts []string
	done := false
	add := func(s *goquery.Selection) {
		if done {
			return
		}
		text := strings.TrimSpace(citationPattern.ReplaceAllString(s.Text(), ""))
		if text == "" {
			return
		}
		if isHeading(s) {
			if _, ok := wikiTrailingSections[strings.ToLower(text)]; ok {
				done = true
				return
			}
		}
		parts = append(parts, text)
	}

	body.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch goquery.NodeName(child) {
		case "p", "blockquote", "h2", "h3", "h4":
			add(child)
		case "ul", "ol", "dl":
			child.ChildrenFiltered("li, dd").Each(func(_ int, item *goquery.Selection) { add(item) })
		case "div":
			if child.HasClass("mw-heading") {
				add(child.ChildrenFiltered("h2, h3, h4").First())
			}
		}
		return !done
	})

	res.Text = collector.CollapseBlankLines(strings.Join(parts, "\n\n"))
	return res
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h2", "h3", "h4":
		return true
	}
	return false
}
