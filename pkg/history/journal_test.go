package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dotstash", "history.yaml")
	j := New(filesystem.NewOS(), path)

	records, err := j.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := Record{Revision: "abc1234", Action: ActionMove, From: "$HOME/.bashrc", To: "$DOTFILES/bashrc", At: at}
	second := Record{Revision: "abc1234", Action: ActionMove, From: "$DOTFILES/init.vim", To: "$DOTFILES/config/nvim/init.vim", At: at}
	third := Record{Revision: "def5678", Action: ActionMove, From: "$HOME/.vimrc", To: "$DOTFILES/vimrc", At: at}

	require.NoError(t, j.Append(first, second))
	require.NoError(t, j.Append(third))
	require.NoError(t, j.Append())

	all, err := j.Load()
	require.NoError(t, err)
	assert.Equal(t, []Record{first, second, third}, all)

	forRev, err := j.ForRevision("abc1234")
	require.NoError(t, err)
	assert.Equal(t, []Record{first, second}, forRev)

	none, err := j.ForRevision("0000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournalRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte("revision: [unterminated"), 0644))

	_, err := New(filesystem.NewOS(), path).Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestRecordInverse(t *testing.T) {
	r := Record{Revision: "abc1234", Action: ActionMove, From: "a", To: "b"}
	inv := r.Inverse()
	assert.Equal(t, "b", inv.From)
	assert.Equal(t, "a", inv.To)
	assert.True(t, inv.Undo)
	assert.False(t, inv.Inverse().Undo)
}
