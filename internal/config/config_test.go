package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Database.Path)
	require.Equal(t, "2006-01-02", cfg.UI.DateFormat)
	require.Equal(t, "ja", cfg.UI.DefaultLanguage)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUBSCO_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("SUBSCO_UI_DEFAULT_LANGUAGE", "en")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.db", cfg.Database.Path)
	require.Equal(t, "en", cfg.UI.DefaultLanguage)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[database]\npath = \"/tmp/from-file.db\"\n\n[ui]\ntimezone = \"UTC\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SUBSCO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-file.db", cfg.Database.Path)
	require.Equal(t, "UTC", cfg.UI.Timezone)
	// untouched keys keep defaults
	require.Equal(t, "ja", cfg.UI.DefaultLanguage)
}
