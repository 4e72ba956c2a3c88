// Package noise decides whether a block of text is site boilerplate
// (bot disclaimers, moderation notices, forum rule blurbs) rather than content.
package noise

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Phrases are the boilerplate signatures. Any one of them marks a block as noise.
var Phrases = []string{
	"i am a bot",
	"i'm a bot",
	"this action was performed automatically",
	"please contact the moderators of this subreddit",
	"contact the moderators",
	"if you have any questions or concerns",
	"your post has been removed",
	"your submission has been removed",
	"this post has been removed",
	"this comment has been removed",
	"please read the rules",
	"read our rules before posting",
	"see the sidebar for rules",
	"automoderator",
	"beep boop",
}

// conjunction catches paraphrased moderation notices: all three must appear.
var conjunction = []string{"rules", "report", "moderators"}

// Classifier matches text against a fixed phrase list in a single pass.
type Classifier struct {
	phrases *ahocorasick.Matcher
	all     *ahocorasick.Matcher
}

// New builds a Classifier over the given phrase fragments.
func New(phrases []string) *Classifier {
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}
	c := &Classifier{all: ahocorasick.NewStringMatcher(conjunction)}
	if len(normalized) > 0 {
		c.phrases = ahocorasick.NewStringMatcher(normalized)
	}
	return c
}

var defaultClassifier = New(Phrases)

// IsNoise reports whether text is boilerplate using the default phrase list.
func IsNoise(text string) bool {
	return defaultClassifier.IsNoise(text)
}

// IsNoise reports whether text contains any phrase fragment, or all of
// "rules", "report" and "moderators". Matching is case-insensitive.
func (c *Classifier) IsNoise(text string) bool {
	if text == "" {
		return false
	}
	lower := []byte(strings.ToLower(text))
	if c.phrases != nil && len(c.phrases.MatchThreadSafe(lower)) > 0 {
		return true
	}
	// MatchThreadSafe reports each dictionary entry at most once.
	return len(c.all.MatchThreadSafe(lower)) == len(conjunction)
}
