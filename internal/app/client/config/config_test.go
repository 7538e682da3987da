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

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	missing := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(missing, []byte("{}\n"), 0o600))

	cfg, err := Load(viper.New(), missing)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: books.example:9000\nenable_tls: true\ntimeout: 5s\n"), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://books.example:9000", cfg.BaseURL())
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Setenv("SERVER_ADDRESS", "override:1234")
	cfg, err = Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "override:1234", cfg.ServerAddress, "environment wins over the file")
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: [unclosed\n"), 0o600))

	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}
