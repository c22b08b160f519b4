// Package outfile handles persisting rendered snapshots: output naming and
// lock-guarded atomic writes so concurrent runs never interleave writes to
// the same file.
package outfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// timestampLayout distinguishes successive snapshots of the same project.
const timestampLayout = "20060102_150405"

// Name returns the snapshot filename for a title at the given time:
// {title}_{timestamp}.md.
func Name(title string, now time.Time) string {
	return fmt.Sprintf("%s_%s.md", title, now.Format(timestampLayout))
}

// Write writes data to path under an exclusive file lock, creating the
// parent directory if needed. The write itself goes through a temp file and
// rename so readers never observe a partial snapshot.
//
// The lock file lives next to the target with a ".lock" suffix.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// atomicWrite writes via a temp file in the target's directory and renames
// it into place. Rename is atomic on the same filesystem, so an interrupted
// write leaves the target untouched.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".snapdoc-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tmp = nil // Renamed; skip cleanup.
	return nil
}
