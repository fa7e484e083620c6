package pipeline

import (
	"errors"
	"time"

	"github.com/theirongolddev/chatrecap/internal/logger"
	"github.com/theirongolddev/chatrecap/internal/source"
	"github.com/theirongolddev/chatrecap/internal/store"
)

// CacheError reports a cache failure. Callers may fall back to Load.
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *CacheError) Unwrap() error { return e.Err }

// LoadWithCache returns the cached extraction of path when the file's mtime and
// size still match the cache, and otherwise parses the file and refreshes the
// cache entry. Format and I/O errors are returned exactly as Load returns them.
func LoadWithCache(path string, cache *store.Cache) (*LoadResult, error) {
	key, info, err := fileKey(path)
	if err != nil {
		return nil, err
	}
	current := store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}

	tracked, ok, err := cache.Tracked(key)
	if err != nil {
		return nil, &CacheError{Op: "reading cache", Err: err}
	}
	if ok && tracked == current {
		entry, err := cache.LoadExport(key)
		switch {
		case err == nil:
			return &LoadResult{
				Messages:           entry.Messages,
				TotalConversations: entry.Conversations,
				Dropped:            entry.Dropped,
				FromCache:          true,
			}, nil
		case !errors.Is(err, store.ErrNotCached):
			return nil, &CacheError{Op: "loading cached export", Err: err}
		}
	}

	export, err := source.LoadExport(key)
	if err != nil {
		if ok {
			// The cached extraction no longer describes the file.
			_ = cache.DeleteExport(key)
		}
		return nil, err
	}
	result := Extract(export)

	err = cache.SaveExport(key, current, store.Entry{
		Messages:      result.Messages,
		Conversations: result.TotalConversations,
		Dropped:       result.Dropped,
	})
	if err != nil {
		return nil, &CacheError{Op: "saving cache", Err: err}
	}
	return result, nil
}

// LoadCached loads path through the cache database at dbPath. Any cache
// failure is logged and answered with a full parse, so the result only
// differs from Load in FromCache.
func LoadCached(path, dbPath string) (*LoadResult, error) {
	log := logger.Get()
	start := time.Now()

	cache, err := store.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, doing full parse")
		return Load(path)
	}
	defer func() { _ = cache.Close() }()

	result, err := LoadWithCache(path, cache)
	var cacheErr *CacheError
	if errors.As(err, &cacheErr) {
		log.Warn().Err(err).Str("path", path).Msg("cache error, falling back to full parse")
		return Load(path)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Bool("from_cache", result.FromCache).
		Int("messages", len(result.Messages)).
		Int("dropped", result.Dropped).
		Dur("elapsed", time.Since(start)).
		Msg("export loaded")
	return result, nil
}
