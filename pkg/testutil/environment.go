package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstash/pkg/config"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/vcs"
	"github.com/arthur-debert/dotstash/pkg/workspace"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is an isolated home directory and archive root.
type TestEnvironment struct {
	Home    string
	Archive string

	Config *config.Config
	FS     *FaultFS
	Clock  *FixedClock
	Repo   *vcs.Fake
	Git    *vcs.Git
	WS     *workspace.Workspace

	t *testing.T
}

// NewTestEnvironment creates the directories and opens a workspace over
// them. The archive root does not exist yet, as on a fresh machine.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	base := t.TempDir()
	env := &TestEnvironment{
		Home:    filepath.Join(base, "home"),
		Archive: filepath.Join(base, "dotfiles"),
		Config:  config.Default(),
		FS:      NewFaultFS(filesystem.NewOS()),
		Clock:   NewFixedClock(),
		t:       t,
	}
	require.NoError(t, os.MkdirAll(env.Home, 0755))
	env.Repo = vcs.NewFake(env.Archive)
	env.Reopen()
	return env
}

// NewGitEnvironment is NewTestEnvironment backed by a real git repository
// in the archive root instead of the in-memory fake. The test is skipped
// when git is not installed.
func NewGitEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	env := NewTestEnvironment(t)
	env.Repo = nil
	env.Git = vcs.NewGit("", env.Archive)
	env.Git.Env = []string{
		"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1",
	}
	env.Reopen()
	return env
}

func (e *TestEnvironment) repository() vcs.Repository {
	if e.Git != nil {
		return e.Git
	}
	return e.Repo
}

// Lookup resolves HOME and DOTFILES to the environment's directories.
func (e *TestEnvironment) Lookup() config.LookupFunc {
	return config.MapLookup(map[string]string{
		"HOME":     e.Home,
		"DOTFILES": e.Archive,
	})
}

// Reopen builds a fresh workspace, re-reading the registry file from disk.
func (e *TestEnvironment) Reopen() *workspace.Workspace {
	e.t.Helper()
	ws, err := workspace.Open(workspace.Options{
		Config: e.Config,
		Lookup: e.Lookup(),
		FS:     e.FS,
		Clock:  e.Clock,
		Repo:   e.repository(),
	})
	require.NoError(e.t, err)
	e.WS = ws
	return ws
}

// HomePath joins rel under the home directory.
func (e *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(e.Home, filepath.FromSlash(rel))
}

// ArchivePath joins rel under the archive root.
func (e *TestEnvironment) ArchivePath(rel string) string {
	return filepath.Join(e.Archive, filepath.FromSlash(rel))
}

// WriteHome creates a file below the home directory.
func (e *TestEnvironment) WriteHome(rel, content string) string {
	e.t.Helper()
	return e.write(e.HomePath(rel), content)
}

// WriteArchive creates a file below the archive root.
func (e *TestEnvironment) WriteArchive(rel, content string) string {
	e.t.Helper()
	return e.write(e.ArchivePath(rel), content)
}

// Link creates a symbolic link at the home-relative path rel.
func (e *TestEnvironment) Link(rel, target string) string {
	e.t.Helper()
	link := e.HomePath(rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(e.t, os.Symlink(target, link))
	return link
}

func (e *TestEnvironment) write(path, content string) string {
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}
