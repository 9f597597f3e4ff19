package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are loaded in order; earlier files win because godotenv never
// overrides a variable that is already set.
var EnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads EnvFiles from dir into the process environment.
// Missing files are skipped.
func LoadDotEnv(dir string) error {
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}
