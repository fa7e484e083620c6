// Package store provides a SQLite-backed cache for extracted export data.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/chatrecap/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotCached is returned when no entry exists for a file.
var ErrNotCached = errors.New("export not cached")

// Cache provides SQLite-backed export caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// Entry is the cached extraction result of one export file.
type Entry struct {
	Messages      []model.Message
	Conversations int
	Dropped       int
}

// Tracked returns the mtime and size recorded for filePath.
func (c *Cache) Tracked(filePath string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes FROM exports WHERE file_path = ?", filePath).
		Scan(&fi.MtimeNs, &fi.SizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// SaveExport replaces the cached entry for filePath.
func (c *Cache) SaveExport(filePath string, fi FileInfo, e Entry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades to the messages of the previous entry.
	if _, err := tx.Exec("DELETE FROM exports WHERE file_path = ?", filePath); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO exports
		(file_path, mtime_ns, size_bytes, conversations, dropped, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		filePath, fi.MtimeNs, fi.SizeBytes, e.Conversations, e.Dropped, now,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO messages
		(file_path, seq, conversation, role, timestamp, text_kind, fragments, model)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range e.Messages {
		kind, frags, err := encodeText(m.Text)
		if err != nil {
			return fmt.Errorf("encoding message %d: %w", i, err)
		}
		_, err = stmt.Exec(filePath, i, m.Conversation, m.Role, m.Timestamp.Unix(), kind, frags, m.Model)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadExport reads the cached entry for filePath. Messages come back in the
// order they were saved.
func (c *Cache) LoadExport(filePath string) (Entry, error) {
	var e Entry
	err := c.db.QueryRow("SELECT conversations, dropped FROM exports WHERE file_path = ?", filePath).
		Scan(&e.Conversations, &e.Dropped)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotCached
	}
	if err != nil {
		return Entry{}, err
	}

	rows, err := c.db.Query(`SELECT
		conversation, role, timestamp, text_kind, fragments, model
		FROM messages WHERE file_path = ? ORDER BY seq`, filePath)
	if err != nil {
		return Entry{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var m model.Message
		var ts int64
		var kind int
		var frags string
		var modelName sql.NullString

		if err := rows.Scan(&m.Conversation, &m.Role, &ts, &kind, &frags, &modelName); err != nil {
			return Entry{}, err
		}
		m.Timestamp = time.Unix(ts, 0)
		if modelName.Valid {
			m.Model = modelName.String
		}
		m.Text, err = decodeText(model.TextKind(kind), frags)
		if err != nil {
			return Entry{}, fmt.Errorf("decoding cached message: %w", err)
		}
		e.Messages = append(e.Messages, m)
	}
	return e, rows.Err()
}

// DeleteExport removes a cached export and its messages.
func (c *Cache) DeleteExport(filePath string) error {
	_, err := c.db.Exec("DELETE FROM exports WHERE file_path = ?", filePath)
	return err
}

// ExportCount returns the number of cached exports.
func (c *Cache) ExportCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&count)
	return count, err
}

func encodeText(t model.Text) (model.TextKind, string, error) {
	var parts []string
	kind := model.KindPlain
	switch v := t.(type) {
	case model.FragmentedText:
		kind = model.KindFragmented
		parts = []string(v)
	case nil:
		parts = []string{""}
	default:
		parts = []string{v.String()}
	}
	if parts == nil {
		parts = []string{}
	}
	b, err := json.Marshal(parts)
	return kind, string(b), err
}

func decodeText(kind model.TextKind, frags string) (model.Text, error) {
	var parts []string
	if err := json.Unmarshal([]byte(frags), &parts); err != nil {
		return nil, err
	}
	if kind == model.KindFragmented {
		return model.FragmentedText(parts), nil
	}
	if len(parts) == 0 {
		return model.PlainText(""), nil
	}
	return model.PlainText(parts[0]), nil
}
