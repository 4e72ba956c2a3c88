package page

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Clickables(t *testing.T) {
	u, _ := url.Parse("https://example.com/a")
	p, err := NewStatic(strings.NewReader(`<html><head><title> My
	Page </title></head><body>
		<details id="d"><summary>Read more</summary><p>hidden</p></details>
		<button aria-controls="rest">Show more</button>
		<div id="rest" hidden>rest</div>
		<a href="/x" aria-label="Expand thread"></a>
		<button>Load more</button>
	</body></html>`), u)
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Page", Title(doc))
	assert.Equal(t, "https://example.com/a", p.URL().String())

	clickables, err := p.Clickables(ctx)
	require.NoError(t, err)
	require.Len(t, clickables, 4)
	assert.Equal(t, "Read more", clickables[0].Label())
	assert.Equal(t, "Expand thread", clickables[2].Label())

	require.NoError(t, clickables[0].Activate(ctx))
	_, open := doc.Find("#d").Attr("open")
	assert.True(t, open)

	require.NoError(t, clickables[1].Activate(ctx))
	_, hidden := doc.Find("#rest").Attr("hidden")
	assert.False(t, hidden)

	assert.ErrorIs(t, clickables[3].Activate(ctx), ErrNotActivatable)
}
