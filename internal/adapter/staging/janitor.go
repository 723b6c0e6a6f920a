package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"push-attach/internal/domain/ports"
)

// Janitor reclaims staged files once their receivers had time to use them.
// It plays the part the host platform plays for extension temp files.
type Janitor struct {
	root   string
	ttl    time.Duration
	logger ports.Logger
}

// NewJanitor builds a Janitor sweeping the given staging directory.
func NewJanitor(dir *Dir, ttl time.Duration, logger ports.Logger) *Janitor {
	return &Janitor{
		root:   dir.Root(),
		ttl:    ttl,
		logger: logger,
	}
}

// Sweep removes regular files older than the TTL and returns how many were removed.
func (j *Janitor) Sweep(ctx context.Context, now time.Time) (int, error) {
	entries, err := os.ReadDir(j.root)
	if err != nil {
		return 0, fmt.Errorf("read staging directory: %w", err)
	}

	removed := 0
	cutoff := now.Add(-j.ttl)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.root, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			j.logger.Warn(ctx, "failed to remove stale attachment", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info(ctx, "staging directory swept", "removed", removed)
	}
	return removed, nil
}
