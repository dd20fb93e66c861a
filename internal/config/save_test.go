package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTheme_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveTheme(path, "dracula"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# jjcolor configuration")
	assert.Contains(t, string(data), "theme: dracula")
	assert.Contains(t, string(data), "# background highlighting workers")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, 4, cfg.Highlight.Workers)
}

func TestSaveTheme_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveTheme(path, "monokai"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: monokai\n", string(data))
}

func TestSaveTheme_AppendsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewer:\n  tab_width: 2\n"), 0o600))

	require.NoError(t, SaveTheme(path, "github"))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.Theme)
	assert.Equal(t, 2, cfg.Viewer.TabWidth)
}

func TestSaveTheme_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	err := SaveTheme(path, "nord")
	require.Error(t, err)
}
