package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Plan sizes the windows sentences are packed into.
type Plan struct {
	ChunkChars int
	Overlap    int
}

var (
	// LongPlan packs text over LongTextChars.
	LongPlan = Plan{ChunkChars: 2200, Overlap: 150}
	// ConcisePlan packs text for the "concise" level.
	ConcisePlan = Plan{ChunkChars: 1400, Overlap: 120}
)

// sentenceBoundary is terminal punctuation, the whitespace after it, and the
// first character of the next sentence.
var sentenceBoundary = regexp.MustCompile(`[.!?](\s+)[A-Z0-9"']`)

// SplitSentences splits after '.', '!' or '?' when whitespace and then an
// uppercase letter, digit or quote follow.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, text[start:m[2]])
		start = m[3]
	}
	return append(out, text[start:])
}

// Pack groups sentences into windows of about plan.ChunkChars characters.
// Each new window starts with the tail sentences of the previous one, as
// long as they fit in plan.Overlap characters.
func Pack(text string, plan Plan) []string {
	if text == "" {
		return nil
	}

	var chunks, cur []string
	curLen := 0
	for _, sent := range SplitSentences(text) {
		slen := utf8.RuneCountInString(sent)
		if curLen+slen > plan.ChunkChars && len(cur) > 0 {
			chunks = append(chunks, strings.TrimSpace(strings.Join(cur, " ")))

			var tail []string
			tailLen := 0
			for i := len(cur) - 1; i >= 0; i-- {
				n := utf8.RuneCountInString(cur[i])
				if tailLen+n >= plan.Overlap {
					break
				}
				tail = append([]string{cur[i]}, tail...)
				tailLen += n
			}
			cur = tail
			curLen = tailLen
		}
		cur = append(cur, sent)
		curLen += slen
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.TrimSpace(strings.Join(cur, " ")))
	}
	return chunks
}
