package mapreduce

import (
	"cmp"
	"fmt"
	"slices"
)

// Keyword is a word and its aggregated count.
type Keyword struct {
	Word  string
	Count int
}

func (k Keyword) String() string { return fmt.Sprintf("%s:%d", k.Word, k.Count) }

// TopKeywords returns the n most frequent words, ties broken by word so the
// order is stable. Words shorter than minLen runes are skipped.
func TopKeywords(wordCounts map[string]int, n, minLen int) []Keyword {
	ks := make([]Keyword, 0, len(wordCounts))
	for w, c := range wordCounts {
		if len([]rune(w)) < minLen {
			continue
		}
		ks = append(ks, Keyword{Word: w, Count: c})
	}
	slices.SortFunc(ks, func(a, b Keyword) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(ks) > n {
		ks = ks[:n]
	}
	return ks
}
