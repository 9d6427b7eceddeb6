package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"code.continuecash.io/continuecash/config"
	"code.continuecash.io/continuecash/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.NewDefaultConfig()
	cfg.Factory.Execution.Level.Level = logging.DebugLevel
	require.NoError(t, config.Write(path, &cfg))

	got, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, logging.DebugLevel, got.Factory.Execution.Level.Get())
	assert.Equal(t, logging.InfoLevel, got.Collateral.Level.Get())
}

func TestConfigLevelFromString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := []byte("Level = \"warn\"\n\n[Collateral]\nLevel = \"debug\"\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	got, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, logging.WarnLevel, got.Level.Get())
	assert.Equal(t, logging.DebugLevel, got.Collateral.Level.Get())
	// untouched sections keep their defaults
	assert.Equal(t, logging.InfoLevel, got.Broker.Level.Get())
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("NotAKey = 12\n"), 0o644))

	_, err := config.Read(path)
	require.Error(t, err)
}

func TestConfigMissingFile(t *testing.T) {
	_, err := config.Read(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
