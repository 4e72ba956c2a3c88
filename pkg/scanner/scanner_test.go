package scanner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const page = `<html><body>
<div id="header"><p>Site</p><p>Menu</p></div>
<article id="story">
	<h1>Headline</h1>
	<p>` + "A long paragraph of reporting that goes on for a while. " + `</p>
	<p>Another paragraph with more detail about the events.</p>
</article>
<section id="side"><p>Related</p><p>Links</p></section>
</body></html>`

func TestCandidates_Deduplicated(t *testing.T) {
	doc := parse(t, page)
	cands := Candidates(doc)

	ids := make(map[string]int)
	for _, c := range cands {
		id, _ := c.Attr("id")
		ids[id]++
	}
	assert.Equal(t, 1, ids["story"], "article matched by selector and as container appears once")
	assert.Equal(t, 1, ids["header"])
	assert.Equal(t, 1, ids["side"])
	id, _ := cands[0].Attr("id")
	assert.Equal(t, "story", id, "selector matches come first")
}

func TestBest(t *testing.T) {
	doc := parse(t, page)
	best, ok := Best(doc)
	require.True(t, ok)
	id, _ := best.Element.Attr("id")
	assert.Equal(t, "story", id)
	assert.True(t, strings.HasPrefix(best.Block.Content, "Headline\n\nA long paragraph"))
}

func TestBest_Idempotent(t *testing.T) {
	doc := parse(t, page)
	first, ok := Best(doc)
	require.True(t, ok)
	second, ok := Best(doc)
	require.True(t, ok)
	assert.Same(t, first.Element.Get(0), second.Element.Get(0))
	assert.Equal(t, first.Block, second.Block)
}

func TestBest_TieGoesToFirst(t *testing.T) {
	doc := parse(t, `<html><body>
		<div id="a"><p>same text</p><p>twice</p></div>
		<div id="b"><p>same text</p><p>twice</p></div>
	</body></html>`)
	best, ok := Best(doc)
	require.True(t, ok)
	id, _ := best.Element.Attr("id")
	assert.Equal(t, "a", id)
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(parse(t, `<html><body><div><span>x</span></div></body></html>`))
	assert.False(t, ok)
	_, ok = Best(nil)
	assert.False(t, ok)
}

func TestBest_SingleChildSiteBodies(t *testing.T) {
	body := strings.Repeat("Body text from a known site layout. ", 10)
	tests := []struct {
		name  string
		html  string
		class string
	}{
		{"wikipedia", `<html><body><div id="bodyContent"><div class="mw-parser-output"><p>` + body + `</p></div></div></body></html>`, "mw-parser-output"},
		{"old reddit", `<html><body><div class="usertext-body"><div class="md"><p>` + body + `</p></div></div></body></html>`, "md"},
		{"reddit slot", `<html><body><div id="wrap"><div slot="text-body" class="slot"><p>` + body + `</p></div></div></body></html>`, "slot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := Best(parse(t, tt.html))
			require.True(t, ok)
			class, _ := best.Element.Attr("class")
			assert.Equal(t, tt.class, class)
			assert.Contains(t, best.Block.Content, "Body text from a known site layout.")
		})
	}
}
