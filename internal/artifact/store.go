// Package artifact implements a transient filesystem key→bytes store for
// materialized conversation blobs and analysis reports. Artifacts are a
// caching/audit byproduct: they are overwritten on re-runs and swept by
// a retention task, so nothing may rely on them surviving a run.
package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileExt = ".txt"

// Store writes keyed text artifacts under a single directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates the artifact directory if needed and returns a Store.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory cannot be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
	}

	return &Store{
		dir:    dir,
		logger: logger.With("component", "artifact_store"),
	}, nil
}

// Write stores data under key, overwriting any previous artifact with the
// same key, and returns the file path.
func (s *Store) Write(key string, data []byte) (string, error) {
	if key == "" {
		return "", fmt.Errorf("artifact key cannot be empty")
	}

	path := filepath.Join(s.dir, SanitizeKey(key)+fileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Failed to write artifact", "key", key, "error", err)
		return "", fmt.Errorf("failed to write artifact %s: %w", key, err)
	}

	s.logger.Debug("Artifact written", "key", key, "path", path, "size", len(data))
	return path, nil
}

// Sweep removes artifacts whose modification time is older than ttl and
// returns the number of removed files. Individual removal failures are
// logged and do not stop the sweep.
func (s *Store) Sweep(ctx context.Context, ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read artifact directory: %w", err)
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0

	for _, entry := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("Failed to stat artifact during sweep", "name", entry.Name(), "error", err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove expired artifact", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Swept expired artifacts", "removed", removed, "ttl", ttl)
	}
	return removed, nil
}

// SanitizeKey converts an artifact key into a safe file name: path
// separators and control characters are replaced so a chat title can
// never escape the artifact directory.
func SanitizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	for _, r := range key {
		switch {
		case r == '/' || r == '\\' || r == filepath.Separator:
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), ". ")
	if name == "" {
		name = "_"
	}
	return name
}
