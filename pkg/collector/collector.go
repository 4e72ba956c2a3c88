// Package collector gathers the readable text of a DOM subtree.
//
// Only leaf-like content elements count as article text. Containers are never
// taken verbatim so nested chrome (nav, widgets) is not swallowed.
package collector

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/noise"
)

// ContentSelector lists the paragraph-like elements that carry article text.
const ContentSelector = "p,h1,h2,h3,h4,h5,h6,li,blockquote,pre"

var (
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingSpaceRe = regexp.MustCompile(`[ \t\f\v]+\n`)
)

// TextBlock is the collected text of one candidate.
type TextBlock struct {
	Content          string
	NormalizedLength int
}

// NewTextBlock builds a TextBlock, collapsing blank-line runs in content.
func NewTextBlock(content string) TextBlock {
	content = CollapseBlankLines(content)
	return TextBlock{Content: content, NormalizedLength: NormalizedLength(content)}
}

// Collect returns the non-noise text of root's content elements, in document
// order, separated by a blank line. A nil or empty root yields "".
func Collect(root *goquery.Selection) string {
	if root == nil || root.Length() == 0 {
		return ""
	}
	var parts []string
	root.Find(ContentSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || noise.IsNoise(text) {
			return
		}
		parts = append(parts, text)
	})
	return CollapseBlankLines(strings.Join(parts, "\n\n"))
}

// CollectBlock is Collect wrapped in a TextBlock.
func CollectBlock(root *goquery.Selection) TextBlock {
	return NewTextBlock(Collect(root))
}

// CollapseBlankLines reduces runs of 3+ newlines to exactly 2.
func CollapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

// NormalizedLength counts characters after collapsing all whitespace runs to
// single spaces. Used for ranking only.
func NormalizedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// Normalize prepares final text for display: non-breaking spaces become
// spaces, trailing whitespace before newlines is dropped, blank-line runs are
// collapsed and the ends are trimmed.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = CollapseBlankLines(s)
	return strings.TrimSpace(s)
}
