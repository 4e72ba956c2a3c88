package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Summaries keyed by a hash of the sanitized input and its length settings.
-- The input text itself is never stored.
CREATE TABLE IF NOT EXISTS summaries (
    cache_key TEXT PRIMARY KEY,
    backend TEXT NOT NULL,
    summary TEXT NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,  -- unix seconds
    hits INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_summaries_created ON summaries(created_at);
`
