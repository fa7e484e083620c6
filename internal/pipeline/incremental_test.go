package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/source"
	"github.com/theirongolddev/chatrecap/internal/store"
)

func TestLoadWithCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := store.Open(filepath.Join(dir, "exports.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	path := filepath.Join(dir, "export.json")
	body := exportWith(
		`"a":{"role":"user","timestamp":`+jan2025+`,"content":"hi"},
		 "b":{"role":"assistant","timestamp":`+feb2025+`,"content_list":[{"content":"A"},{"content":"B"}],"model":"qwen-max"},
		 "c":{"role":"user","content":"dropped"}`,
	)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	first, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.FromCache {
		t.Error("first load should parse the file")
	}

	second, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second.FromCache {
		t.Error("second load should come from cache")
	}
	if second.TotalConversations != first.TotalConversations || second.Dropped != first.Dropped {
		t.Errorf("cached totals = %d/%d, want %d/%d",
			second.TotalConversations, second.Dropped, first.TotalConversations, first.Dropped)
	}

	a := Aggregate(first.Messages, first.TotalConversations, model.Scope{Year: 2025}, time.UTC)
	b := Aggregate(second.Messages, second.TotalConversations, model.Scope{Year: 2025}, time.UTC)
	if a.User != b.User || a.Assistant != b.Assistant || a.TotalMessages != b.TotalMessages {
		t.Errorf("cached report %+v differs from parsed report %+v", b, a)
	}
	if len(b.Models) != 1 || b.Models[0].Model != "qwen-max" {
		t.Errorf("cached Models = %+v, want qwen-max", b.Models)
	}

	// Rewrite with a different size so the entry is stale.
	body = exportWith(`"a":{"role":"user","timestamp":` + jan2025 + `,"content":"changed content"}`)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if third.FromCache {
		t.Error("changed file should be reparsed")
	}
	if len(third.Messages) != 1 || third.Messages[0].Text.String() != "changed content" {
		t.Errorf("third load messages = %+v", third.Messages)
	}

	// A file that turns malformed loses its cache entry.
	if err := os.WriteFile(path, []byte(`{"success":false}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWithCache(path, cache); !errors.Is(err, source.ErrMalformedExport) {
		t.Fatalf("malformed load error = %v, want ErrMalformedExport", err)
	}
	if n, err := cache.ExportCount(); err != nil || n != 0 {
		t.Errorf("ExportCount = %d, %v; want 0", n, err)
	}
}

func TestLoadWithCache_PropagatesFormatErrors(t *testing.T) {
	dir := t.TempDir()
	cache, err := store.Open(filepath.Join(dir, "exports.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	path := filepath.Join(dir, "export.json")
	if err := os.WriteFile(path, []byte(`{"success":false,"data":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err = LoadWithCache(path, cache)
	if !errors.Is(err, source.ErrMalformedExport) {
		t.Fatalf("error = %v, want ErrMalformedExport", err)
	}
	var cacheErr *CacheError
	if errors.As(err, &cacheErr) {
		t.Error("format error should not be reported as a cache error")
	}

	_, err = LoadWithCache(filepath.Join(dir, "missing.json"), cache)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadCached_FallsBackWhenCacheUnavailable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	body := exportWith(`"a":{"role":"user","timestamp":` + jan2025 + `,"content":"hi"}`)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	// A regular file where the cache directory should be makes Open fail.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := LoadCached(path, filepath.Join(blocker, "exports.db"))
	if err != nil {
		t.Fatalf("LoadCached: %v", err)
	}
	if len(result.Messages) != 1 || result.FromCache {
		t.Errorf("result = %d messages, FromCache=%v; want 1, false", len(result.Messages), result.FromCache)
	}
}

func TestLoadCached_UsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	body := exportWith(`"a":{"role":"user","timestamp":` + jan2025 + `,"content":"hi"}`)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(dir, "cache", "exports.db")

	if _, err := LoadCached(path, dbPath); err != nil {
		t.Fatalf("first LoadCached: %v", err)
	}
	second, err := LoadCached(path, dbPath)
	if err != nil {
		t.Fatalf("second LoadCached: %v", err)
	}
	if !second.FromCache {
		t.Error("second load should come from cache")
	}

	if _, err := LoadCached(filepath.Join(dir, "missing.json"), dbPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}
