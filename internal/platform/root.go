package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned when no directory above the start looks like a site.
var ErrRootNotFound = errors.New("site root not found")

type markerKind int

const (
	markerFile markerKind = iota
	markerDir
	markerAny // .git is a file inside worktrees
)

// rootMarkers are checked in order at every level.
var rootMarkers = []struct {
	name string
	kind markerKind
}{
	{"folio.yaml", markerFile},
	{".git", markerAny},
	{"content", markerDir},
}

// FindRoot walks up from startDir and returns the first directory that
// holds a folio.yaml, a .git entry or a content/ directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if isRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrRootNotFound, abs)
		}
		dir = parent
	}
}

func isRoot(dir string) bool {
	for _, m := range rootMarkers {
		info, err := os.Stat(filepath.Join(dir, m.name))
		if err != nil {
			continue
		}
		switch m.kind {
		case markerAny:
			return true
		case markerDir:
			if info.IsDir() {
				return true
			}
		case markerFile:
			if !info.IsDir() {
				return true
			}
		}
	}
	return false
}
