package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix marks in-flight atomic writes; the watcher ignores these files.
const TempFilePrefix = ".folio-tmp-"

// WriteFileAtomic publishes data at filename in one step.
//
// Export rewrites snapshot files that a site build or a running watch loop
// may be reading at the same moment, so the content is staged in a sibling
// temp file and renamed over the target. Readers see either the old snapshot
// or the new one. The parent directory is synced after the rename so the new
// name survives a crash. Missing parent directories are created; an existing
// directory at filename is an error.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if info, err := os.Stat(filename); err == nil && info.IsDir() {
		return fmt.Errorf("cannot replace directory %s with a file", filename)
	}

	staged, err := stage(dir, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, filename); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("failed to publish %s: %w", filename, err)
	}
	return syncDir(dir)
}

// stage writes data to a fresh temp file in dir and returns its path.
// The file is removed again on any failure.
func stage(dir string, data []byte, perm os.FileMode) (path string, err error) {
	f, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to stage write in %s: %w", dir, err)
	}
	path = f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	// CreateTemp always uses 0600.
	if err = f.Chmod(perm); err != nil {
		return "", fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open %s for sync: %w", dir, err)
	}
	err = d.Sync()
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	if err != nil && !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("failed to sync %s: %w", dir, err)
	}
	return nil
}
