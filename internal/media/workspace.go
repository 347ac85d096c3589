// Package media manages the on-disk working directory that downloaded
// artifacts live in for the duration of one URL's processing.
package media

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Workspace is a per-run scratch directory. Artifacts are written into it
// by the fetcher and removed per URL; whatever is left is reclaimed when
// the workspace closes.
type Workspace struct {
	dir    string
	logger *slog.Logger
}

// NewWorkspace creates the run's scratch directory under baseDir.
func NewWorkspace(baseDir, runID string, logger *slog.Logger) (*Workspace, error) {
	dir := filepath.Join(baseDir, "vidrelay-"+shortID(runID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	return &Workspace{dir: dir, logger: logger}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// SizeMB returns the size of a file in megabytes.
func (w *Workspace) SizeMB(path string) (float64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(stat.Size()) / (1024 * 1024), nil
}

// Remove deletes a single artifact file. Removal is best effort: a file
// that is already gone is fine, anything else is logged and swallowed so
// cleanup never interrupts the walk.
func (w *Workspace) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Warn("failed to remove artifact", "path", path, "error", err)
	}
}

// Close removes the workspace directory and anything still in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
