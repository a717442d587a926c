package tracker

// Schema DDL for the index database. One row per issued token; the
// identity index serves rename recovery and Reindex updates.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS marks (
    record_id TEXT PRIMARY KEY,
    device INTEGER NOT NULL,
    inode INTEGER NOT NULL,
    path TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS marks_identity ON marks (device, inode);
`
