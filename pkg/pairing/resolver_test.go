package pairing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestIsAncestor(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")
	config := mustFromRegistry(t, "$HOME/.config", "$DOTFILES/config", roots)
	nvim := mustFromRegistry(t, "$HOME/.config/nvim/init.vim", "$DOTFILES/init.vim", roots)
	configure := mustFromRegistry(t, "$HOME/.configure", "$DOTFILES/configure", roots)
	bashrc := mustFromRegistry(t, "$HOME/.bashrc", "$DOTFILES/bashrc", roots)

	assert.True(t, IsAncestor(config, nvim))
	assert.False(t, IsAncestor(nvim, config))
	assert.False(t, IsAncestor(config, configure), "prefix must be component-wise")
	assert.False(t, IsAncestor(config, bashrc))
	assert.False(t, IsAncestor(config, config), "irreflexive")
}

func TestIsAncestorThroughArchivePath(t *testing.T) {
	// archive root inside the home directory
	roots := testRoots(t, "/home/user", "/home/user/.local/share/dotstash")
	local := mustFromRegistry(t, "$HOME/.local", "$DOTFILES/local", roots)
	bashrc := mustFromRegistry(t, "$HOME/.bashrc", "$DOTFILES/bashrc", roots)

	assert.True(t, IsAncestor(local, bashrc), "bashrc's archive copy lives below ~/.local")
	assert.False(t, IsAncestor(local, local))
}

func TestIsAncestorProperties(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")
	segment := rapid.StringMatching(`\.?[a-z]{1,5}`)

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.SliceOfN(segment, 1, 4).Draw(rt, "a")
		b := rapid.SliceOfN(segment, 1, 4).Draw(rt, "b")

		pa, err := ForFile(filepath.Join(a...), roots)
		if err != nil {
			rt.Fatalf("pairing a: %v", err)
		}
		pb, err := ForFile(filepath.Join(b...), roots)
		if err != nil {
			rt.Fatalf("pairing b: %v", err)
		}

		if IsAncestor(pa, pa) {
			rt.Fatalf("%s is its own ancestor", pa)
		}
		if pa.Key() != pb.Key() && IsAncestor(pa, pb) && IsAncestor(pb, pa) {
			rt.Fatalf("%s and %s are each other's ancestor", pa, pb)
		}
	})
}

func TestChildPlacement(t *testing.T) {
	roots := testRoots(t, "/home/user", "/srv/dotfiles")

	tests := []struct {
		name     string
		ancestor [2]string
		nested   [2]string
		want     string
	}{
		{
			name:     "flat entry moves below tracked directory",
			ancestor: [2]string{"$HOME/.config", "$DOTFILES/config"},
			nested:   [2]string{"$HOME/.config/nvim/init.vim", "$DOTFILES/init.vim"},
			want:     "$DOTFILES/config/nvim/init.vim",
		},
		{
			name:     "dotted leaf keeps its dot",
			ancestor: [2]string{"$HOME/.config", "$DOTFILES/config"},
			nested:   [2]string{"$HOME/.config/app/.env", "$DOTFILES/env"},
			want:     "$DOTFILES/config/app/.env",
		},
		{
			name:     "relocated ancestor uses its own archive name",
			ancestor: [2]string{"$HOME/.config", "$DOTFILES/config.20240101000000"},
			nested:   [2]string{"$HOME/.config/alacritty/alacritty.yml", "$DOTFILES/alacritty.yml"},
			want:     "$DOTFILES/config.20240101000000/alacritty/alacritty.yml",
		},
		{
			name:     "name match when the home path is elsewhere",
			ancestor: [2]string{"$HOME/.vim", "$DOTFILES/vim"},
			nested:   [2]string{"$HOME/.other/vim/colors/x.vim", "$DOTFILES/x.vim"},
			want:     "$DOTFILES/vim/colors/x.vim",
		},
		{
			name:     "flat placement when the name is absent",
			ancestor: [2]string{"$HOME/.vim", "$DOTFILES/vim"},
			nested:   [2]string{"$HOME/.other/colors/x.vim", "$DOTFILES/x.vim"},
			want:     "$DOTFILES/vim/other/colors/x.vim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ancestor := mustFromRegistry(t, tt.ancestor[0], tt.ancestor[1], roots)
			nested := mustFromRegistry(t, tt.nested[0], tt.nested[1], roots)

			placed, err := ChildPlacement(ancestor, nested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, placed.Repr())
			assert.Equal(t, paths.ArchiveSide, placed.Side())

			child, err := ancestor.Child(nested)
			require.NoError(t, err)
			assert.Equal(t, nested.Key(), child.Key())
			assert.Equal(t, tt.want, child.Value())
		})
	}

	t.Run("custom link cannot be an ancestor", func(t *testing.T) {
		link := mustFromRegistry(t, "$HOME/.vim", "$HOME/.nvim", roots)
		nested := mustFromRegistry(t, "$HOME/.vim/x", "$DOTFILES/x", roots)
		_, err := ChildPlacement(link, nested)
		assert.Error(t, err)
	})
}

func TestResolveLinkSource(t *testing.T) {
	fs := filesystem.NewOS()
	home := t.TempDir()
	archive := t.TempDir()
	roots := testRoots(t, home, archive)

	realFile := filepath.Join(home, "configs", "bashrc.real")
	require.NoError(t, os.MkdirAll(filepath.Dir(realFile), 0755))
	require.NoError(t, os.WriteFile(realFile, []byte("export X=1"), 0644))

	t.Run("regular file is unchanged", func(t *testing.T) {
		p := mustForFile(t, realFile, roots)
		got, err := ResolveLinkSource(fs, p, roots)
		require.NoError(t, err)
		assert.Equal(t, p.Key(), got.Key())
	})

	t.Run("relative link is followed", func(t *testing.T) {
		link := filepath.Join(home, ".bashrc")
		require.NoError(t, os.Symlink("configs/bashrc.real", link))

		got, err := ResolveLinkSource(fs, mustForFile(t, link, roots), roots)
		require.NoError(t, err)
		assert.Equal(t, "$HOME/configs/bashrc.real", got.Key())
		assert.Equal(t, "$DOTFILES/bashrc.real", got.Value())
	})

	t.Run("dangling link", func(t *testing.T) {
		link := filepath.Join(home, ".zshrc")
		require.NoError(t, os.Symlink(filepath.Join(home, "missing"), link))

		_, err := ResolveLinkSource(fs, mustForFile(t, link, roots), roots)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDanglingSymlink))
	})
}

func TestBackupName(t *testing.T) {
	fs := filesystem.NewOS()
	dir := t.TempDir()
	clock := fixedClock{time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)}
	target := filepath.Join(dir, ".vimrc")

	first, err := BackupName(fs, target, clock, "20060102150405")
	require.NoError(t, err)
	assert.Equal(t, target+".20240301123045", first)

	require.NoError(t, os.WriteFile(first, nil, 0644))
	second, err := BackupName(fs, target, clock, "20060102150405")
	require.NoError(t, err)
	assert.Equal(t, target+".20240301123045.1", second)

	require.NoError(t, os.WriteFile(second, nil, 0644))
	third, err := BackupName(fs, target, clock, "20060102150405")
	require.NoError(t, err)
	assert.Equal(t, target+".20240301123045.2", third)
}
