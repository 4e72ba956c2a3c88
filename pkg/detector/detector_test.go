package detector

import (
	"net/url"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want SiteFamily
	}{
		{"new reddit", "https://www.reddit.com/r/golang/comments/abc/title/", SiteFamily{ID: Reddit}},
		{"old reddit", "https://old.reddit.com/r/golang/comments/abc/", SiteFamily{ID: Reddit}},
		{"short link", "https://redd.it/abc", SiteFamily{ID: Reddit}},
		{"wikipedia", "https://en.wikipedia.org/wiki/Go_(programming_language)", SiteFamily{ID: Wikipedia}},
		{"uppercase host", "https://EN.WIKIPEDIA.ORG/wiki/X", SiteFamily{ID: Wikipedia}},
		{"lookalike", "https://notreddit.com/r/x", Generic},
		{"news site", "https://example.com/news/1", Generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.url, err)
			}
			if got := Classify(u); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if got := Classify(nil); got.Known() {
		t.Errorf("Classify(nil) = %v, want generic", got)
	}
	if Generic.String() != "generic" {
		t.Errorf("Generic.String() = %q", Generic.String())
	}
}
