// Package fetcher downloads raw HTML for the static host.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/smart-reader/pkg/page"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 20 * time.Second

	// MaxBodyBytes caps the downloaded document.
	MaxBodyBytes = 10 << 20

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36 smart-reader"
)

// Cache stores fetched bodies by URL.
type Cache interface {
	Get(rawURL string) ([]byte, bool)
	Set(rawURL string, body []byte) error
}

type Fetcher struct {
	client *http.Client
	cache  Cache
	logger *slog.Logger
}

// NewFetcher returns a fetcher with the given timeout. cache may be nil.
func NewFetcher(timeout time.Duration, cache Cache, logger *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
		logger: logger,
	}
}

// GetPage fetches u and wraps it as a static page.
func (f *Fetcher) GetPage(ctx context.Context, u *url.URL) (*page.Static, error) {
	body, err := f.GetHTMLBytes(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return page.NewStatic(bytes.NewReader(body), u)
}

// GetHTMLBytes returns the body of a successful text/html response.
func (f *Fetcher) GetHTMLBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(rawURL); ok {
			f.logger.Debug("Page cache hit", "url", rawURL)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("unsupported content type %q", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	f.logger.Debug("Fetched page", "url", rawURL, "bytes", len(body), "duration_ms", time.Since(start).Milliseconds())

	if f.cache != nil {
		if err := f.cache.Set(rawURL, body); err != nil {
			f.logger.Warn("Failed to cache page", "url", rawURL, "error", err)
		}
	}
	return body, nil
}
