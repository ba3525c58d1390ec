package pairing

import (
	"testing"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoots(t *testing.T, home, archive string) paths.Roots {
	t.Helper()
	vars := map[string]string{"HOME": home, "DOTFILES": archive}
	roots, err := paths.NewRoots(func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}, "HOME", "DOTFILES")
	require.NoError(t, err)
	return roots
}

func mustForFile(t *testing.T, raw string, roots paths.Roots) Pairing {
	t.Helper()
	p, err := ForFile(raw, roots)
	require.NoError(t, err)
	return p
}

func mustFromRegistry(t *testing.T, key, value string, roots paths.Roots) Pairing {
	t.Helper()
	p, err := FromRegistry(key, value, roots)
	require.NoError(t, err)
	return p
}

func TestForFile(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")

	tests := []struct {
		raw       string
		wantKey   string
		wantValue string
	}{
		{"~/.bashrc", "$HOME/.bashrc", "$DOTFILES/bashrc"},
		{"/home/user/.config", "$HOME/.config", "$DOTFILES/config"},
		{"~/.config/nvim/init.vim", "$HOME/.config/nvim/init.vim", "$DOTFILES/init.vim"},
		{"~/notes.txt", "$HOME/notes.txt", "$DOTFILES/notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := mustForFile(t, tt.raw, roots)
			assert.Equal(t, tt.wantKey, p.Key())
			assert.Equal(t, tt.wantValue, p.Value())
			assert.True(t, p.IsEntry())
			assert.Equal(t, tt.wantKey+" = "+tt.wantValue, p.String())
		})
	}
}

func TestNew(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")

	p, err := New("~/.gvimrc", ".vimrc", roots)
	require.NoError(t, err)
	assert.Equal(t, "$HOME/.gvimrc", p.Key())
	assert.Equal(t, "$DOTFILES/vimrc", p.Value())

	_, err = New("/etc/hosts", "hosts", roots)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
}

func TestFromRegistry(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")

	t.Run("entry", func(t *testing.T) {
		p := mustFromRegistry(t, "$HOME/.bashrc", "$DOTFILES/bashrc", roots)
		assert.True(t, p.IsEntry())
		assert.Equal(t, "/home/user/.bashrc", p.Home.Abs())
		assert.Equal(t, "/srv/dotfiles/bashrc", p.Archive.Abs())
	})

	t.Run("custom link", func(t *testing.T) {
		p := mustFromRegistry(t, "$HOME/.gvimrc", "$HOME/.vimrc", roots)
		assert.False(t, p.IsEntry())
		assert.False(t, p.IsTopLevel())
	})

	t.Run("key on the archive side is rejected", func(t *testing.T) {
		_, err := FromRegistry("$DOTFILES/bashrc", "$DOTFILES/bashrc", roots)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
	})
}

func TestIsTopLevel(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")

	assert.True(t, mustFromRegistry(t, "$HOME/.bashrc", "$DOTFILES/bashrc", roots).IsTopLevel())
	assert.False(t, mustFromRegistry(t, "$HOME/.config/nvim/init.vim", "$DOTFILES/config/nvim/init.vim", roots).IsTopLevel())
}

func TestIsLinkedTo(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")
	vimrc := mustFromRegistry(t, "$HOME/.vimrc", "$DOTFILES/vimrc", roots)
	gvimrc := mustFromRegistry(t, "$HOME/.gvimrc", "$HOME/.vimrc", roots)

	assert.True(t, gvimrc.IsLinkedTo(vimrc))
	assert.False(t, vimrc.IsLinkedTo(gvimrc))
}
