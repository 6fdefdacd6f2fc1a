package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, appName, configFile)
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := useTempConfigDir(t)

	cfg, created, err := Load()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, cfg.IPAddress)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip_address":""}`, string(data))
}

func TestLoadExistingFile(t *testing.T) {
	path := useTempConfigDir(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(`{"ip_address":"10.0.0.248"}`), 0600))

	cfg, created, err := Load()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "10.0.0.248", cfg.IPAddress)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := useTempConfigDir(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(`{"ip_address":"10.0.0.5","comment":"bedroom"}`), 0600))

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.IPAddress)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := useTempConfigDir(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, _, err := Load()
	assert.Error(t, err)
}
