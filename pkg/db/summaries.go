package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Summary is one cached row.
type Summary struct {
	Key       string
	Backend   string
	Summary   string
	WordCount int
	CreatedAt time.Time
	Hits      int
}

// GetSummary returns the row for key if it is younger than ttl and counts
// the hit. A ttl of zero or less never expires.
func (db *DB) GetSummary(ctx context.Context, key string, ttl time.Duration, now time.Time) (Summary, bool, error) {
	var s Summary
	var created int64
	err := db.QueryRowContext(ctx, `
		SELECT cache_key, backend, summary, word_count, created_at, hits
		FROM summaries WHERE cache_key = ?
	`, key).Scan(&s.Key, &s.Backend, &s.Summary, &s.WordCount, &created, &s.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, false, nil
	}
	if err != nil {
		return Summary{}, false, fmt.Errorf("failed to read summary: %w", err)
	}
	s.CreatedAt = time.Unix(created, 0)
	if ttl > 0 && now.Sub(s.CreatedAt) > ttl {
		return Summary{}, false, nil
	}

	if _, err := db.ExecContext(ctx, "UPDATE summaries SET hits = hits + 1 WHERE cache_key = ?", key); err != nil {
		return Summary{}, false, fmt.Errorf("failed to count hit: %w", err)
	}
	s.Hits++
	return s, true, nil
}

// PutSummary inserts or replaces the row for s.Key.
func (db *DB) PutSummary(ctx context.Context, s Summary) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO summaries (cache_key, backend, summary, word_count, created_at, hits)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(cache_key) DO UPDATE SET
			backend = excluded.backend,
			summary = excluded.summary,
			word_count = excluded.word_count,
			created_at = excluded.created_at,
			hits = 0
	`, s.Key, s.Backend, s.Summary, s.WordCount, s.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}

// PruneSummaries deletes rows created before cutoff.
func (db *DB) PruneSummaries(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM summaries WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune summaries: %w", err)
	}
	return res.RowsAffected()
}

// SummaryStats reports the row count and total hits.
func (db *DB) SummaryStats(ctx context.Context) (rows, hits int, err error) {
	err = db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM summaries").Scan(&rows, &hits)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read summary stats: %w", err)
	}
	return rows, hits, nil
}

// SummaryCache adapts DB to the summarization pipeline's cache.
type SummaryCache struct {
	DB      *DB
	TTL     time.Duration
	Backend string
	Now     func() time.Time
}

func (c *SummaryCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	s, ok, err := c.DB.GetSummary(ctx, key, c.TTL, c.now())
	if err != nil || !ok {
		return "", false, err
	}
	return s.Summary, true, nil
}

func (c *SummaryCache) Put(ctx context.Context, key, summary string, words int) error {
	return c.DB.PutSummary(ctx, Summary{
		Key:       key,
		Backend:   c.Backend,
		Summary:   summary,
		WordCount: words,
		CreatedAt: c.now(),
	})
}
