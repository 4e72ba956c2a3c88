// Package parser runs the readability algorithm as a last-resort extractor.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/collector"
	"github.com/go-shiori/go-readability"
)

// ErrNoDocument is returned when there is nothing to parse.
var ErrNoDocument = errors.New("no document to parse")

// Article is the readability output reduced to what extraction needs.
type Article struct {
	Title string
	Text  string
}

// Readability runs go-readability over a detached copy of doc (serialized and
// re-parsed), so the caller's document is never mutated. An empty Article with a nil error means
// readability found nothing.
func Readability(doc *goquery.Document, pageURL *url.URL) (article Article, err error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return Article{}, ErrNoDocument
	}
	if pageURL == nil {
		pageURL = &url.URL{}
	}

	defer func() {
		if r := recover(); r != nil {
			article, err = Article{}, fmt.Errorf("readability panicked: %v", r)
		}
	}()

	clone, err := doc.Html()
	if err != nil {
		return Article{}, fmt.Errorf("failed to copy document: %w", err)
	}
	parsed, err := readability.FromReader(strings.NewReader(clone), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("readability: %w", err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if parsed.Content != "" {
		// Prefer paragraph-aware text over the flat text content.
		content, err := goquery.NewDocumentFromReader(strings.NewReader(parsed.Content))
		if err == nil {
			if collected := collector.Collect(content.Selection); collector.NormalizedLength(collected) >= collector.NormalizedLength(text) {
				text = collected
			}
		}
	}

	return Article{
		Title: normalizeText(parsed.Title),
		Text:  collector.CollapseBlankLines(text),
	}, nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
