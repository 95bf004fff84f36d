package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 120\ncounties: 96\nterrain: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 96, cfg.Counties)
	assert.False(t, cfg.Terrain)

	// Untouched fields keep their defaults.
	def := Default()
	assert.Equal(t, def.Height, cfg.Height)
	assert.Equal(t, def.Duchies, cfg.Duchies)
	assert.Equal(t, def.Kingdoms, cfg.Kingdoms)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [not a number\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
