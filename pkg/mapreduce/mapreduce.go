// Package mapreduce aggregates per-sentence word counts.
package mapreduce

import "github.com/dtnitsch/smart-reader/pkg/analytics"

// Map generates a word frequency map for a single piece of text.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// MapAll maps every part.
func MapAll(parts []string, a *analytics.Analytics) []map[string]int {
	out := make([]map[string]int, len(parts))
	for i, p := range parts {
		out[i] = Map(p, a)
	}
	return out
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
