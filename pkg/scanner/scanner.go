// Package scanner finds the DOM subtree that most likely holds the article.
//
// The candidate set is the union of elements matching semantic content
// selectors and every container under <body> with at least two element
// children. Each candidate is scored by the normalized length of its
// collected text; the longest wins and ties go to the first encountered.
package scanner

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/collector"
	"golang.org/x/net/html"
)

// ContentSelectors are the semantic and conventional article containers.
var ContentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	`[role="article"]`,
	`[itemprop="articleBody"]`,
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	".story-body",
	".story-content",
	".post-body",
	".post",
	".entry",
	".story",
	".content",
	"#content",
	"#main",
	// Known site bodies, which often have a single child.
	`[slot="text-body"]`,
	".usertext-body .md",
	"shreddit-post .md",
	".mw-parser-output",
	"#mw-content-text",
}

// containerSelector matches generic structural containers.
const containerSelector = "div, section, article, main"

// minContainerChildren is the element-child count that marks a structured region.
const minContainerChildren = 2

// Candidate is a scored subtree.
type Candidate struct {
	Element *goquery.Selection
	Block   collector.TextBlock
}

// Candidates returns the deduplicated candidate set in discovery order.
func Candidates(doc *goquery.Document) []*goquery.Selection {
	if doc == nil {
		return nil
	}
	seen := make(map[*html.Node]struct{})
	var out []*goquery.Selection
	add := func(s *goquery.Selection) {
		n := s.Get(0)
		if _, dup := seen[n]; dup {
			return
		}
		seen[n] = struct{}{}
		out = append(out, s)
	}

	for _, sel := range ContentSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) { add(s) })
	}
	doc.Find("body").Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() >= minContainerChildren {
			add(s)
		}
	})
	return out
}

// Best returns the highest scoring candidate, or false when no candidate has
// any text.
func Best(doc *goquery.Document) (Candidate, bool) {
	var best Candidate
	found := false
	for _, s := range Candidates(doc) {
		block := collector.CollectBlock(s)
		if block.NormalizedLength == 0 {
			continue
		}
		if !found || block.NormalizedLength > best.Block.NormalizedLength {
			best = Candidate{Element: s, Block: block}
			found = true
		}
	}
	return best, found
}
