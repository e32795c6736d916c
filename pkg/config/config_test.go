package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/provide-io/pkgender/pkg/save/gen4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "__bak_", cfg.BackupInfix)
	assert.Equal(t, ".sav", cfg.ExpectedExtension)
	assert.Nil(t, cfg.Game)
	assert.False(t, cfg.JSONLog)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[log]
level = debug
json = true

[backup]
infix = .orig_

[save]
extension = dsv
game = Platinum
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.JSONLog)
	assert.Equal(t, ".orig_", cfg.BackupInfix)
	assert.Equal(t, ".dsv", cfg.ExpectedExtension)
	require.NotNil(t, cfg.Game)
	assert.Equal(t, gen4.Pt, *cfg.Game)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("[save]\ngame = red\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("[backup]\ninfix = ../x\n"))
	assert.Error(t, err)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("PKGENDER_LOG_LEVEL", "")
	t.Setenv("PKGENDER_JSON_LOG", "")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = warn\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = warn\n"), 0o644))
	t.Setenv(EnvConfigPath, path)
	t.Setenv("PKGENDER_LOG_LEVEL", "trace")
	t.Setenv("PKGENDER_JSON_LOG", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.JSONLog)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("PKGENDER_LOG_LEVEL", "")
	t.Setenv("PKGENDER_JSON_LOG", "")
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, Default().BackupInfix, cfg.BackupInfix)
}
