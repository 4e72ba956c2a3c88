package parser

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><title>Readable</title></head><body>
<div id="nav"><a href="/">Home</a> <a href="/about">About</a></div>
<div id="story">
<p>The river rose steadily through the night, and by dawn the lower town was under a foot of water. Residents who had ignored the warnings found themselves carrying furniture up narrow stairs.</p>
<p>Officials said the flood barrier had been scheduled for repair last spring, but the contract was delayed twice. Engineers now estimate the work will take another eight months to complete.</p>
<p>Volunteers set up a shelter in the school gymnasium, serving hot meals and collecting dry clothes for families who had lost most of what they owned to the water.</p>
</div></body></html>`

func TestReadability_DoesNotMutateInput(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	require.NoError(t, err)
	before, err := doc.Html()
	require.NoError(t, err)

	u, _ := url.Parse("https://news.example.com/flood")
	article, err := Readability(doc, u)
	require.NoError(t, err)

	after, err := doc.Html()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, article.Text, "flood barrier")
}

func TestReadability_NoDocument(t *testing.T) {
	_, err := Readability(nil, nil)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", normalizeText("  a \n\n b\n c  "))
}
