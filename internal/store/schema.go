package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exports (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    conversations        INTEGER NOT NULL,
    dropped              INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    file_path            TEXT NOT NULL REFERENCES exports(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    conversation         INTEGER NOT NULL,
    role                 TEXT NOT NULL,
    timestamp            INTEGER NOT NULL,
    text_kind            INTEGER NOT NULL,
    fragments            TEXT NOT NULL,
    model                TEXT,
    PRIMARY KEY (file_path, seq)
);

CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp);
`
