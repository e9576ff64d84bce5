package cliconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, (&Config{ServerURL: "https://api.seacatering.id"}).Save(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.seacatering.id", cfg.ServerURL)
}

func TestResolveServerURLPrecedence(t *testing.T) {
	cfg := &Config{ServerURL: "http://file"}
	t.Setenv(ServerURLEnv, "")
	assert.Equal(t, "http://file", cfg.ResolveServerURL(""))

	t.Setenv(ServerURLEnv, "http://env")
	assert.Equal(t, "http://env", cfg.ResolveServerURL(""))
	assert.Equal(t, "http://flag", cfg.ResolveServerURL("http://flag"))
}
