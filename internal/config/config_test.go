package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/yarrow/internal/config"
)

func TestLoadMissingPathUsesZeroValue(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.GCInitialThreshold)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yarrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gc_initial_threshold: 2048\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.GCInitialThreshold)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yarrow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gc_initial_threshold: 2048\n"), 0o644))
	t.Setenv("YARROW_GC_INITIAL_THRESHOLD", "4096")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), cfg.GCInitialThreshold)
}
