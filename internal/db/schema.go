package db

// PostgresSchema creates the documents table in PostgreSQL
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    template    TEXT NOT NULL DEFAULT '',
    content     JSONB NOT NULL,
    version     INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents (updated_at DESC);
`

// SQLiteSchema creates the documents table in SQLite. Timestamps are RFC 3339 text.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS documents (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    template    TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    version     INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents (updated_at DESC);
`
