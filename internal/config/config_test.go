package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Stage)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.DatabaseUrl)
	assert.Equal(t, "battleship.db", cfg.LocalDbPath)
	assert.Equal(t, "file://db/migration", cfg.MigrationDir)
	assert.Equal(t, 100, cfg.MaxPlacementAttempts)
	assert.False(t, cfg.SeparateShips)
	assert.Equal(t, 20*time.Minute, cfg.SessionCleanupInterval)
	assert.Equal(t, 2*time.Minute, cfg.ReconnectGracePeriod)
}

func TestLoad_WithEnvFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7070\nLOG_LEVEL=debug\nSEPARATE_SHIPS=true\nSESSION_CLEANUP_INTERVAL=5m\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SeparateShips)
	assert.Equal(t, 5*time.Minute, cfg.SessionCleanupInterval)
}

func TestLoad_EnvironmentWinsOverEnvFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_PLACEMENT_ATTEMPTS", "500")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\n"), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 500, cfg.MaxPlacementAttempts)
}

func TestLoad_ProdSkipsEnvFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("STAGE", "prod")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\n"), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Stage)
	assert.Equal(t, 9191, cfg.Port)
}

func TestLoad_InvalidStage(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("STAGE", "staging")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage must be either dev or prod")
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	// a directory cannot be read as an env file
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
