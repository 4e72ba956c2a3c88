package expander

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/smart-reader/pkg/page"
	"github.com/stretchr/testify/assert"
)

type fakeClickable struct {
	label     string
	err       error
	activated bool
}

func (f *fakeClickable) Label() string { return f.label }
func (f *fakeClickable) Activate(context.Context) error {
	f.activated = true
	return f.err
}

type fakePage struct {
	clickables []page.Clickable
	err        error
}

func (f *fakePage) URL() *url.URL { return &url.URL{} }
func (f *fakePage) Clickables(context.Context) ([]page.Clickable, error) {
	return f.clickables, f.err
}
func (f *fakePage) Snapshot(context.Context) (*goquery.Document, error) { return nil, nil }

func TestIsExpansionLabel(t *testing.T) {
	assert.True(t, IsExpansionLabel("Continue Reading →"))
	assert.True(t, IsExpansionLabel("SEE MORE replies"))
	assert.False(t, IsExpansionLabel("Subscribe"))
	assert.False(t, IsExpansionLabel(""))
}

func TestExpand(t *testing.T) {
	ok := &fakeClickable{label: "Read more"}
	broken := &fakeClickable{label: "Show more", err: errors.New("detached")}
	other := &fakeClickable{label: "Share"}
	p := &fakePage{clickables: []page.Clickable{ok, broken, other}}

	out := Expand(context.Background(), p)

	assert.Equal(t, 3, out.Scanned)
	assert.Equal(t, 2, out.Matched)
	assert.Equal(t, 1, out.Activated)
	assert.Len(t, out.Failures, 1)
	assert.True(t, ok.activated)
	assert.False(t, other.activated)
	assert.NoError(t, out.Err)
}

func TestExpand_ListingFails(t *testing.T) {
	out := Expand(context.Background(), &fakePage{err: errors.New("gone")})
	assert.Error(t, out.Err)
	assert.Zero(t, out.Scanned)
}

func TestIsExpansionLabel_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 2000 {
				assert.True(t, IsExpansionLabel("Read More"))
				assert.False(t, IsExpansionLabel("Reply"))
			}
		}()
	}
	wg.Wait()
}
