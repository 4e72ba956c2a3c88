// Package caching keeps fetched pages on disk for a short time so repeated
// extract and summarize runs against the same URL skip the network.
package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/dtnitsch/smart-reader/internal/common"
	"github.com/dtnitsch/smart-reader/pkg/storage"
)

// DefaultTTL is how long a fetched page is reused.
const DefaultTTL = 10 * time.Minute

// DefaultDir returns the page cache directory under the XDG cache home.
func DefaultDir() string {
	return filepath.Join(xdg.CacheHome, "smart-reader", "pages")
}

// Cache is a file-per-URL store with a TTL based on modification time.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewCache creates the directory if needed. A ttl of zero or less disables
// reads, so every Get is a miss.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (c *Cache) file(rawURL string) string {
	return filepath.Join(c.dir, common.ContentHash([]byte(rawURL))+".html")
}

// Get returns the cached body for rawURL when present and fresh.
func (c *Cache) Get(rawURL string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	path := c.file(rawURL)
	stats, err := storage.GetFileStats(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(stats.ModTime) > c.ttl {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores body for rawURL, replacing any previous entry atomically.
func (c *Cache) Set(rawURL string, body []byte) error {
	if err := storage.SaveFile(c.file(rawURL), body); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Prune removes expired entries and returns how many were deleted.
func (c *Cache) Prune() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if c.now().Sub(info.ModTime()) > c.ttl {
			if err := os.Remove(filepath.Join(c.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
