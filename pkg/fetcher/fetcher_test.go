package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/smart-reader/pkg/caching"
)

func TestGetPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "smart-reader")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Hello</title></head><body><p>World</p></body></html>`))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL + "/post")
	p, err := NewFetcher(time.Second, nil, nil).GetPage(context.Background(), u)
	require.NoError(t, err)
	doc, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc.Find("title").Text())
	assert.Equal(t, "/post", p.URL().Path)
}

func TestGetHTMLBytes_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, nil, nil)
	_, err := f.GetHTMLBytes(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status code: 404")

	_, err = f.GetHTMLBytes(context.Background(), srv.URL+"/json")
	assert.ErrorContains(t, err, "unsupported content type")
}

func TestGetHTMLBytes_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<p>cached</p>"))
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Minute)
	require.NoError(t, err)
	f := NewFetcher(time.Second, cache, nil)

	for range 3 {
		body, err := f.GetHTMLBytes(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>cached</p>", string(body))
	}
	assert.Equal(t, int32(1), hits.Load())
}
