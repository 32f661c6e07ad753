package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TRACK_TEST_DIR", "/var/data")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty", "", ""},
		{"memory", ":memory:", ":memory:"},
		{"tilde only", "~", home},
		{"tilde prefix", "~/track/track.db", filepath.Join(home, "track/track.db")},
		{"env var", "$TRACK_TEST_DIR/track.db", "/var/data/track.db"},
		{"absolute", "/tmp/track.db", "/tmp/track.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.path))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRACK_DOTENV_A=from-file\nTRACK_DOTENV_B=from-file\n"), 0600))

	t.Setenv("TRACK_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("TRACK_DOTENV_A") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))

	assert.Equal(t, "from-file", os.Getenv("TRACK_DOTENV_A"))
	assert.Equal(t, "from-env", os.Getenv("TRACK_DOTENV_B"), "existing variables are not overridden")
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BAD-KEY=1\n"), 0600))

	assert.Error(t, LoadDotEnv(envFile))
}

func TestFromViper_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	v := viper.New()
	SetDefaults(v)

	s, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/track/track.db"), s.DatabasePath)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.True(t, s.ImportProgress)
	assert.False(t, s.NoSeed)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyDatabasePath, MemoryDatabase)
	v.Set(KeyCurrency, " eur ")
	v.Set(KeyLogLevel, "DEBUG")
	v.Set(KeyLogFormat, "json")
	v.Set(KeyImportProgress, false)

	s, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, MemoryDatabase, s.DatabasePath)
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.False(t, s.ImportProgress)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"empty database path", KeyDatabasePath, "  ", common.ErrMissingConfig},
		{"empty currency", KeyCurrency, "", common.ErrMissingConfig},
		{"bad level", KeyLogLevel, "verbose", common.ErrInvalidConfig},
		{"bad format", KeyLogFormat, "xml", common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := FromViper(v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}
