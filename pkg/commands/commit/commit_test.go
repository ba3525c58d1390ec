package commit

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotstash/pkg/commands/add"
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitWithGit(t *testing.T) {
	env := testutil.NewGitEnvironment(t)
	env.WriteHome(".bashrc", "export A=1\n")
	_, err := add.Add(add.AddOptions{Workspace: env.WS, Path: "~/.bashrc"})
	require.NoError(t, err)

	t.Run("unchanged", func(t *testing.T) {
		result, err := Commit(CommitOptions{Workspace: env.WS, Path: "~/.bashrc"})
		require.NoError(t, err)
		assert.True(t, result.NothingToCommit)
	})

	t.Run("edited", func(t *testing.T) {
		require.NoError(t, os.WriteFile(env.ArchivePath("bashrc"), []byte("export A=2\n"), 0644))

		result, err := Commit(CommitOptions{Workspace: env.WS, Path: "~/.bashrc"})
		require.NoError(t, err)
		assert.False(t, result.NothingToCommit)
		assert.Equal(t, "update bashrc", result.Message)
		assert.NotEmpty(t, result.Commit)

		msg, err := env.Git.HeadMessage()
		require.NoError(t, err)
		assert.Equal(t, "update bashrc", msg)
	})
}

func TestCommitNotTracked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	_, err := Commit(CommitOptions{Workspace: env.WS, Path: "~/.profile"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotTracked))
}
