package store

// schemaSQL is the DDL for all tables.
const schemaSQL = `
-- Source paper registry with hash-based change detection
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    filename TEXT NOT NULL,
    format TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    ingest_method TEXT NOT NULL,
    title TEXT,
    status TEXT DEFAULT 'pending',
    metadata JSON,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Finished slide-deck plans, one row per conversion run
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    plan JSON NOT NULL,
    sections JSON NOT NULL,
    slide_count INTEGER NOT NULL,
    bullet_count INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_decks_document ON decks(document_id, created_at);
`
