package add

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/registry"
	"github.com/arthur-debert/dotstash/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAdd(t *testing.T, env *testutil.TestEnvironment, path string) error {
	t.Helper()
	_, err := Add(AddOptions{Workspace: env.WS, Path: path})
	return err
}

func TestAddFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteHome(".bashrc", "export A=1\n")

	result, err := Add(AddOptions{Workspace: env.WS, Path: "~/.bashrc"})
	require.NoError(t, err)

	assert.Equal(t, "$HOME/.bashrc", result.Key)
	assert.Equal(t, "$DOTFILES/bashrc", result.Value)
	assert.False(t, result.Directory)
	assert.False(t, result.Placed)
	assert.Equal(t, "c1", result.Commit)

	testutil.AssertRegularFile(t, env.ArchivePath("bashrc"), "export A=1\n")
	testutil.AssertNotExists(t, env.HomePath(".bashrc"))
	testutil.AssertRegistry(t, env.WS.RegistryPath(), registry.Entry{Key: "$HOME/.bashrc", Value: "$DOTFILES/bashrc"})

	assert.Equal(t, []string{"add .bashrc"}, env.Repo.Messages())
	assert.Contains(t, env.Repo.Commits[1].Paths, env.WS.RegistryPath())
	assert.Contains(t, env.Repo.Commits[1].Paths, env.ArchivePath("bashrc"))

	records, err := env.WS.Journal.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c0", records[0].Revision)
	assert.Equal(t, "$HOME/.bashrc", records[0].From)
	assert.Equal(t, "$DOTFILES/bashrc", records[0].To)
}

func TestAddAlreadyTracked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteHome(".bashrc", "export A=1\n")
	require.NoError(t, runAdd(t, env, "~/.bashrc"))

	env.WriteHome(".bashrc", "local edits\n")
	err := runAdd(t, env, "~/.bashrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyTracked))

	testutil.AssertRegularFile(t, env.HomePath(".bashrc"), "local edits\n")
	testutil.AssertRegularFile(t, env.ArchivePath("bashrc"), "export A=1\n")
	assert.Len(t, env.Repo.Messages(), 1)
}

func TestAddDirectoryAdoptsFlatEntries(t *testing.T) {
	for _, installed := range []bool{false, true} {
		name := "links removed"
		if installed {
			name = "links installed"
		}
		t.Run(name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t)
			env.WriteHome(".config/nvim/init.vim", "set number\n")
			env.WriteHome(".config/alacritty.yml", "font: mono\n")

			require.NoError(t, runAdd(t, env, "~/.config/nvim/init.vim"))
			testutil.AssertRegularFile(t, env.ArchivePath("init.vim"), "set number\n")
			if installed {
				env.Link(".config/nvim/init.vim", env.ArchivePath("init.vim"))
			}

			result, err := Add(AddOptions{Workspace: env.WS, Path: "~/.config"})
			require.NoError(t, err)

			assert.True(t, result.Directory)
			require.Len(t, result.Adopted, 1)
			assert.Equal(t, "$HOME/.config/nvim/init.vim", result.Adopted[0].Key)
			assert.Equal(t, "$DOTFILES/init.vim", result.Adopted[0].From)
			assert.Equal(t, "$DOTFILES/config/nvim/init.vim", result.Adopted[0].To)

			testutil.AssertRegularFile(t, env.ArchivePath("config/nvim/init.vim"), "set number\n")
			testutil.AssertRegularFile(t, env.ArchivePath("config/alacritty.yml"), "font: mono\n")
			testutil.AssertNotExists(t, env.ArchivePath("init.vim"))
			testutil.AssertNotExists(t, env.HomePath(".config"))

			testutil.AssertRegularFile(t, env.ArchivePath("config/.gitignore"), "*\n!.gitignore\n!/nvim/\n")
			testutil.AssertRegularFile(t, env.ArchivePath("config/nvim/.gitignore"), "!/init.vim\n")

			testutil.AssertRegistry(t, env.WS.RegistryPath(),
				registry.Entry{Key: "$HOME/.config/nvim/init.vim", Value: "$DOTFILES/config/nvim/init.vim"},
				registry.Entry{Key: "$HOME/.config", Value: "$DOTFILES/config"},
			)
			assert.Equal(t, []string{"add .config/nvim/init.vim", "add .config"}, env.Repo.Messages())
			assert.Contains(t, env.Repo.Commits[2].Paths, env.ArchivePath("init.vim"))

			records, err := env.WS.Journal.Load()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "c1", records[2].Revision)
			assert.Equal(t, "$DOTFILES/init.vim", records[2].From)
		})
	}
}

func TestAddInsideTrackedDirectory(t *testing.T) {
	for _, installed := range []bool{false, true} {
		name := "links removed"
		if installed {
			name = "links installed"
		}
		t.Run(name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t)
			env.WriteHome(".config/alacritty/alacritty.yml", "font: mono\n")
			require.NoError(t, runAdd(t, env, "~/.config"))
			if installed {
				env.Link(".config", env.ArchivePath("config"))
			}

			result, err := Add(AddOptions{Workspace: env.WS, Path: "~/.config/alacritty/alacritty.yml"})
			require.NoError(t, err)

			assert.True(t, result.Placed)
			assert.Equal(t, "$HOME/.config/alacritty/alacritty.yml", result.Key)
			assert.Equal(t, "$DOTFILES/config/alacritty/alacritty.yml", result.Value)

			testutil.AssertRegularFile(t, env.ArchivePath("config/alacritty/alacritty.yml"), "font: mono\n")
			testutil.AssertNotExists(t, env.ArchivePath("alacritty.yml"))
			testutil.AssertRegularFile(t, env.ArchivePath("config/.gitignore"), "*\n!.gitignore\n!/alacritty/\n")
			testutil.AssertRegularFile(t, env.ArchivePath("config/alacritty/.gitignore"), "!/alacritty.yml\n")

			testutil.AssertRegistry(t, env.WS.RegistryPath(),
				registry.Entry{Key: "$HOME/.config", Value: "$DOTFILES/config"},
				registry.Entry{Key: "$HOME/.config/alacritty/alacritty.yml", Value: "$DOTFILES/config/alacritty/alacritty.yml"},
			)
			assert.Equal(t, "add .config/alacritty/alacritty.yml", env.Repo.Messages()[1])

			err = runAdd(t, env, "~/.config/alacritty/alacritty.yml")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyTracked))
		})
	}
}

func TestAddSymlinkArchivesSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteHome("configs/bashrc.real", "export B=2\n")
	env.Link(".bashrc", env.HomePath("configs/bashrc.real"))

	result, err := Add(AddOptions{Workspace: env.WS, Path: "~/.bashrc"})
	require.NoError(t, err)

	assert.Equal(t, "$HOME/configs/bashrc.real", result.Key)
	assert.Equal(t, "$DOTFILES/bashrc.real", result.Value)
	assert.Equal(t, env.HomePath("configs/bashrc.real"), result.Source)
	testutil.AssertRegularFile(t, env.ArchivePath("bashrc.real"), "export B=2\n")
}

func TestAddDanglingSymlink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Link(".zshrc", env.HomePath("missing"))

	err := runAdd(t, env, "~/.zshrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDanglingSymlink))
	assert.Empty(t, env.Repo.Messages())
}

func TestAddBacksUpArchiveCollision(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteHome(".vimrc", "old\n")
	env.WriteHome("work/.vimrc", "new\n")
	require.NoError(t, runAdd(t, env, "~/.vimrc"))

	result, err := Add(AddOptions{Workspace: env.WS, Path: "~/work/.vimrc"})
	require.NoError(t, err)

	backup := "vimrc." + env.Clock.Stamp()
	assert.Equal(t, env.ArchivePath(backup), result.Backup)
	testutil.AssertRegularFile(t, env.ArchivePath("vimrc"), "new\n")
	testutil.AssertRegularFile(t, env.ArchivePath(backup), "old\n")

	testutil.AssertRegistry(t, env.WS.RegistryPath(),
		registry.Entry{Key: "$HOME/.vimrc", Value: "$DOTFILES/" + backup},
		registry.Entry{Key: "$HOME/work/.vimrc", Value: "$DOTFILES/vimrc"},
	)
}

func TestAddUntrackedCollisionIsPreserved(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteArchive("gitconfig", "stray\n")
	env.WriteHome(".gitconfig", "[user]\n")

	result, err := Add(AddOptions{Workspace: env.WS, Path: "~/.gitconfig"})
	require.NoError(t, err)

	testutil.AssertRegularFile(t, result.Backup, "stray\n")
	testutil.AssertRegularFile(t, env.ArchivePath("gitconfig"), "[user]\n")
}

func TestAddMissingFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	err := runAdd(t, env, "~/.nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEntryNotFound))

	env.WriteHome(".config/kitty.conf", "x")
	require.NoError(t, runAdd(t, env, "~/.config"))

	err = runAdd(t, env, "~/.config/absent.conf")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEntryNotFound))

	_, statErr := os.Stat(env.ArchivePath("absent.conf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAddOutsideHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	err := runAdd(t, env, "/etc/hosts")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
}
