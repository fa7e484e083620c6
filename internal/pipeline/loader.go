package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/source"
)

// LoadResult holds the output of the load + extract stage.
type LoadResult struct {
	Messages           []model.Message
	TotalConversations int
	Dropped            int // messages without a usable timestamp
	FromCache          bool
}

// ModelUsage returns per-model assistant message counts over all messages.
func (r *LoadResult) ModelUsage() *model.UsageCounter {
	return CountModels(r.Messages)
}

// Load reads, validates and extracts the export at path.
func Load(path string) (*LoadResult, error) {
	export, err := source.LoadExport(path)
	if err != nil {
		return nil, err
	}
	return Extract(export), nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatrecap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "chatrecap")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "exports.db")
}

func fileKey(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", nil, fmt.Errorf("reading export: %w", err)
	}
	return abs, info, nil
}
