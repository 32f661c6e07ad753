// Package config resolves the application's settings from viper, the
// environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// The in-memory database name is returned unchanged.
func ExpandPath(path string) string {
	if path == "" || path == MemoryDatabase {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
