package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Existing variables win, and missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("loaded environment file", "path", path)
	}
	return nil
}
