package summarize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxInputChars caps sanitized input to keep latency predictable.
const DefaultMaxInputChars = 60000

var (
	wsRe   = regexp.MustCompile(`\s+`)
	citeRe = regexp.MustCompile(`\[\d{1,3}\]`)
	urlRe  = regexp.MustCompile(`https?://\S+`)
	ctrlRe = regexp.MustCompile(`[\x00-\x1f]`)

	markup = bluemonday.StrictPolicy()
)

// Sanitize prepares raw page text for a model: NFKC, markup stripped,
// control characters, citation markers and URLs removed, whitespace
// collapsed, and the result capped at maxChars characters.
func Sanitize(s string, maxChars int) string {
	s = norm.NFKC.String(s)
	if strings.ContainsRune(s, '<') {
		s = html.UnescapeString(markup.Sanitize(s))
	}
	s = ctrlRe.ReplaceAllString(s, " ")
	s = citeRe.ReplaceAllString(s, "")
	s = urlRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\u2014", "-")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimSpace(wsRe.ReplaceAllString(s, " "))

	if maxChars > 0 {
		if r := []rune(s); len(r) > maxChars {
			s = string(r[:maxChars])
		}
	}
	return s
}

// WordCount counts space separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
