// Package expander activates "read more" style controls so collapsed text is
// present before measurement. Expansion is advisory: failures are reported in
// the Outcome and never abort extraction.
package expander

import (
	"context"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/dtnitsch/smart-reader/pkg/page"
)

// Phrases are the labels that mark a collapsed-content control.
var Phrases = []string{
	"read more",
	"show more",
	"continue reading",
	"expand",
	"see more",
	"read full",
	"open full",
	"load more",
}

var matcher = ahocorasick.NewStringMatcher(Phrases)

// Outcome reports what an expansion pass did.
type Outcome struct {
	Scanned   int
	Matched   int
	Activated int
	// Err is set when the clickable elements could not be listed at all.
	Err error
	// Failures holds per-element activation errors.
	Failures []error
}

// IsExpansionLabel reports whether label contains one of the Phrases.
func IsExpansionLabel(label string) bool {
	if label == "" {
		return false
	}
	return len(matcher.MatchThreadSafe([]byte(strings.ToLower(label)))) > 0
}

// Expand activates every clickable on p whose label matches an expansion phrase.
func Expand(ctx context.Context, p page.Page) Outcome {
	var out Outcome
	clickables, err := p.Clickables(ctx)
	if err != nil {
		out.Err = err
		return out
	}
	out.Scanned = len(clickables)
	for _, c := range clickables {
		if ctx.Err() != nil {
			out.Err = ctx.Err()
			return out
		}
		if !IsExpansionLabel(c.Label()) {
			continue
		}
		out.Matched++
		if err := c.Activate(ctx); err != nil {
			out.Failures = append(out.Failures, err)
			continue
		}
		out.Activated++
	}
	return out
}
