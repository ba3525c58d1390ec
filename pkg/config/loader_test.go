package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "HOME", cfg.Roots.HomeVar)
	assert.Equal(t, "DOTFILES", cfg.Roots.ArchiveVar)
	assert.Equal(t, "dotfiles.ini", cfg.Registry.File)
	assert.Equal(t, ".gitignore", cfg.Ignore.File)
	assert.Equal(t, "git", cfg.VCS.Binary)
	assert.True(t, cfg.VCS.Commit)
	assert.Equal(t, "origin", cfg.VCS.Remote)
	assert.Equal(t, 8, cfg.Install.MaxAttempts)
	assert.Equal(t, "20060102150405", cfg.Backup.TimeFormat)
}

func TestLoad(t *testing.T) {
	t.Run("user file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
[roots]
archive_var = "DOTSTASH_ARCHIVE"

[vcs]
commit = false
`), 0644))

		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "DOTSTASH_ARCHIVE", cfg.Roots.ArchiveVar)
		assert.Equal(t, "HOME", cfg.Roots.HomeVar)
		assert.False(t, cfg.VCS.Commit)
	})

	t.Run("environment overrides user file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
[install]
max_attempts = 3
`), 0644))
		t.Setenv("DOTSTASH_INSTALL__MAX_ATTEMPTS", "5")
		t.Setenv("DOTSTASH_REGISTRY__FILE", "links.ini")

		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.Install.MaxAttempts)
		assert.Equal(t, "links.ini", cfg.Registry.File)
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[roots\n"), 0644))

		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("validation rejects identical root variables", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
[roots]
home_var = "HOME"
archive_var = "HOME"
`), 0644))

		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})
}

func TestDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/config")
	assert.Equal(t, "/custom/config", Dir())
}

func TestTOML(t *testing.T) {
	out, err := Default().TOML()
	require.NoError(t, err)

	assert.Contains(t, out, "[roots]")
	assert.Contains(t, out, "archive_var = 'DOTFILES'")
	assert.Contains(t, out, "[install]")
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName), []byte("DOTFILES=/srv/dots\nONLY_IN_FILE=yes\n"), 0644))
	t.Setenv("DOTFILES", "/from/shell")

	lookup, err := Lookup(dir)
	require.NoError(t, err)

	value, ok := lookup("DOTFILES")
	assert.True(t, ok)
	assert.Equal(t, "/from/shell", value, "the process environment wins")

	value, ok = lookup("ONLY_IN_FILE")
	assert.True(t, ok)
	assert.Equal(t, "yes", value)

	_, ok = lookup("DOTSTASH_SURELY_UNSET_VARIABLE")
	assert.False(t, ok)
}

func TestMapLookup(t *testing.T) {
	lookup := MapLookup(map[string]string{"HOME": "/home/u"})

	value, ok := lookup("HOME")
	assert.True(t, ok)
	assert.Equal(t, "/home/u", value)

	_, ok = lookup("DOTFILES")
	assert.False(t, ok)
}
