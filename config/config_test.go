package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key; viper ignores empty variables.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		KeyServerPort, KeyTessdataPrefix, KeyTesseractLanguage, KeyPaddleAPIURL,
		KeyMaxFiles, KeyMaxFileSize, KeyExtractWorkers, KeyMatchTolerance,
		KeyRequireDateMatch, KeyLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "eng", cfg.TesseractLanguage)
	assert.Empty(t, cfg.PaddleAPIURL)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 4, cfg.ExtractWorkers)
	assert.Equal(t, "1", cfg.MatchTolerance.String())
	assert.False(t, cfg.RequireDateMatch)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyMaxFiles, "3")
	t.Setenv(KeyMatchTolerance, "0.50")
	t.Setenv(KeyRequireDateMatch, "true")
	t.Setenv(KeyPaddleAPIURL, "http://paddle:8866/predict/ocr_system")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxFiles)
	assert.Equal(t, "0.5", cfg.MatchTolerance.String())
	assert.True(t, cfg.RequireDateMatch)
	assert.Equal(t, "http://paddle:8866/predict/ocr_system", cfg.PaddleAPIURL)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyServerPort, "9090")

	path := filepath.Join(t.TempDir(), "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: \"7070\"\nextract_workers: 8\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort, "environment wins over file")
	assert.Equal(t, 8, cfg.ExtractWorkers)
}

func TestLoadConfigInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyMatchTolerance, "one dollar")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv(KeyMatchTolerance, "-1")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv(KeyMatchTolerance, "")
	t.Setenv(KeyExtractWorkers, "0")
	_, err = LoadConfig()
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
