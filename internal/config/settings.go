package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/expense-track/internal/common"
)

// MemoryDatabase is the database path that keeps everything in memory.
const MemoryDatabase = ":memory:"

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyCurrency       = "display.currency"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyImportProgress = "import.progress"
	KeyNoSeed         = "database.no_seed"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/track/track.db"

// Settings is the resolved application configuration.
type Settings struct {
	DatabasePath   string
	Currency       string
	LogLevel       string
	LogFormat      string
	ImportProgress bool
	NoSeed         bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyCurrency, "USD")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyImportProgress, true)
	v.SetDefault(KeyNoSeed, false)
}

// FromViper reads and validates the settings held by v.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		DatabasePath:   ExpandPath(strings.TrimSpace(v.GetString(KeyDatabasePath))),
		Currency:       strings.ToUpper(strings.TrimSpace(v.GetString(KeyCurrency))),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:      strings.ToLower(v.GetString(KeyLogFormat)),
		ImportProgress: v.GetBool(KeyImportProgress),
		NoSeed:         v.GetBool(KeyNoSeed),
	}

	if s.DatabasePath == "" {
		return Settings{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if s.Currency == "" {
		return Settings{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyCurrency)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return Settings{}, fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.LogFormat)
	}
	return s, nil
}
