package extractors

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/detector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFor(t *testing.T) {
	_, ok := For(detector.Generic)
	assert.False(t, ok)
	_, ok = For(detector.SiteFamily{ID: detector.Reddit})
	assert.True(t, ok)
	_, ok = For(detector.SiteFamily{ID: detector.Wikipedia})
	assert.True(t, ok)
}

func TestExtractReddit(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantText  string
	}{
		{
			name: "slotted body",
			html: `<shreddit-post post-title="Why  Go?">
				<div slot="text-body"><p>Because it is simple.</p><p>And fast.</p></div>
			</shreddit-post>
			<shreddit-comment><div slot="comment"><p>Agreed.</p></div></shreddit-comment>
			<shreddit-comment><div slot="comment"><p>I am a bot, beep boop.</p></div></shreddit-comment>`,
			wantTitle: "Why Go?",
			wantText:  "Because it is simple.\n\nAnd fast.\n\nAgreed.",
		},
		{
			name: "shadow tree body",
			html: `<h1 slot="title">Shadow post</h1>
			<shreddit-post><template shadowrootmode="open">
				<div class="md"><p>Inside the shadow root.</p></div>
			</template></shreddit-post>`,
			wantTitle: "Shadow post",
			wantText:  "Inside the shadow root.",
		},
		{
			name: "old reddit",
			html: `<div class="thing link"><p class="title"><a class="title">Old title</a></p>
				<div class="expando"><div class="usertext-body"><div class="md"><p>Old body.</p></div></div></div>
			</div>
			<div class="commentarea">
				<div class="comment"><div class="usertext-body"><div class="md"><p>First!</p></div></div></div>
			</div>`,
			wantTitle: "Old title",
			wantText:  "Old body.\n\nFirst!",
		},
		{
			name:      "nothing",
			html:      `<div>front page</div>`,
			wantTitle: "",
			wantText:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReddit(parse(t, tt.html))
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestExtractWiki(t *testing.T) {
	doc := parse(t, `<h1 id="firstHeading">Go (programming language)</h1>
	<div id="mw-content-text"><div class="mw-parser-output">
		<table class="infobox"><tr><td>Paradigm</td><td>Multi</td></tr></table>
		<p>Go is a language.[1]</p>
		<div class="mw-heading"><h2>History</h2><span>[edit]</span></div>
		<p>Designed at Google.[2][citation needed]</p>
		<ul><li>Concurrency</li><li>Garbage collection</li></ul>
		<div class="navbox"><p>Nav links</p></div>
		<h2>References</h2>
		<p>Ref text</p>
	</div></div>`)

	got := ExtractWiki(doc)
	assert.Equal(t, "Go (programming language)", got.Title)
	assert.Equal(t, "Go is a language.\n\nHistory\n\nDesigned at Google.\n\nConcurrency\n\nGarbage collection", got.Text)
}

func TestExtractNilDocument(t *testing.T) {
	assert.Equal(t, Result{}, ExtractReddit(nil))
	assert.Equal(t, Result{}, ExtractWiki(nil))
}
