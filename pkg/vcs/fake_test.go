package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRevisions(t *testing.T) {
	f := NewFake("/srv/dotfiles")
	_, err := f.Commit("add .bashrc", "bashrc")
	require.NoError(t, err)
	_, err = f.Commit("add .vimrc", "vimrc")
	require.NoError(t, err)

	head, err := f.Head()
	require.NoError(t, err)
	assert.Equal(t, "c2", head)

	prev, err := f.Revision("HEAD^")
	require.NoError(t, err)
	assert.Equal(t, "c1", prev)

	prev, err = f.Revision("HEAD~2")
	require.NoError(t, err)
	assert.Equal(t, "c0", prev)

	_, err = f.Revision("HEAD~3")
	assert.Error(t, err)

	assert.Equal(t, []string{"add .bashrc", "add .vimrc"}, f.Messages())
}

func TestFakePush(t *testing.T) {
	f := NewFake("/srv/dotfiles")
	assert.Error(t, f.Push("origin", "main"))

	require.NoError(t, f.SetRemote("origin", "git@example.com:me/dotfiles.git"))
	_, err := f.Commit("add .bashrc")
	require.NoError(t, err)

	upToDate, err := f.UpToDate()
	require.NoError(t, err)
	assert.False(t, upToDate)

	require.NoError(t, f.Push("origin", "main"))
	upToDate, err = f.UpToDate()
	require.NoError(t, err)
	assert.True(t, upToDate)
}

var _ Repository = (*Fake)(nil)
var _ Repository = (*Git)(nil)
