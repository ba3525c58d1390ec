// Package workspace bundles what every command works against: the resolved
// roots, the registry, the ignore editor, the repository and the journal.
package workspace

import (
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/config"
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/history"
	"github.com/arthur-debert/dotstash/pkg/ignore"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/registry"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/vcs"
)

// Options selects the collaborators of a Workspace. Only Config and Lookup
// are required; everything else defaults to the real implementation.
type Options struct {
	Config *config.Config
	Lookup config.LookupFunc

	FS    types.FS
	Clock types.Clock
	Repo  vcs.Repository
	Store registry.Store

	// NoCommit disables recording mutations in version control.
	NoCommit bool
}

// Workspace is the shared state of one command invocation.
type Workspace struct {
	Config   *config.Config
	Roots    paths.Roots
	FS       types.FS
	Clock    types.Clock
	Registry *registry.Registry
	Ignore   *ignore.Editor
	Repo     vcs.Repository
	Journal  *history.Journal

	store  registry.Store
	commit bool
}

// Open resolves the roots and loads the registry.
func Open(opts Options) (*Workspace, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	roots, err := paths.NewRoots(opts.Lookup, cfg.Roots.HomeVar, cfg.Roots.ArchiveVar)
	if err != nil {
		return nil, err
	}
	if roots.ArchiveFallback {
		logger := logging.GetLogger("workspace")
		logger.Info().
			Str("variable", cfg.Roots.ArchiveVar).
			Str("archive", roots.Archive).
			Msg("Archive variable unset, using default directory")
	}

	ws := &Workspace{
		Config: cfg,
		Roots:  roots,
		FS:     opts.FS,
		Clock:  opts.Clock,
		Repo:   opts.Repo,
		commit: cfg.VCS.Commit && !opts.NoCommit,
	}
	if ws.FS == nil {
		ws.FS = filesystem.NewOS()
	}
	if ws.Clock == nil {
		ws.Clock = filesystem.SystemClock()
	}
	if ws.Repo == nil {
		ws.Repo = vcs.NewGit(cfg.VCS.Binary, roots.Archive)
	}

	ws.store = opts.Store
	if ws.store == nil {
		ws.store = registry.NewINIStore(ws.RegistryPath())
	}
	if err := ws.ReloadRegistry(); err != nil {
		return nil, err
	}

	ws.Ignore = ignore.New(ws.FS, cfg.Ignore.File)
	ws.Journal = history.New(ws.FS, ws.JournalPath())
	return ws, nil
}

// ReloadRegistry re-reads the registry from its store, discarding the
// in-memory copy.
func (w *Workspace) ReloadRegistry() error {
	reg, err := registry.Open(w.store, w.Roots)
	if err != nil {
		return err
	}
	w.Registry = reg
	return nil
}

// RegistryPath is the registry file inside the archive root.
func (w *Workspace) RegistryPath() string {
	return filepath.Join(w.Roots.Archive, w.Config.Registry.File)
}

// JournalPath is the journal file inside the archive root.
func (w *Workspace) JournalPath() string {
	return filepath.Join(w.Roots.Archive, w.Config.History.File)
}

// Committing reports whether mutations are recorded in version control.
func (w *Workspace) Committing() bool {
	return w.commit
}

// EnsureRepo creates the archive repository with an initial commit of the
// registry file when it does not exist yet.
func (w *Workspace) EnsureRepo() error {
	if !w.commit || w.Repo.IsRepo() {
		return nil
	}
	logger := logging.GetLogger("workspace")

	if err := w.Repo.Init(); err != nil {
		return err
	}
	if !filesystem.Exists(w.FS, w.RegistryPath()) {
		if err := w.FS.MkdirAll(w.Roots.Archive, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot create %s", w.Roots.Archive)
		}
		if err := w.FS.WriteFile(w.RegistryPath(), nil, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot create %s", w.RegistryPath())
		}
	}
	head, err := w.Repo.Commit("Initial commit", w.RegistryPath())
	if err != nil {
		return err
	}
	logger.Info().Str("archive", w.Roots.Archive).Str("head", head).Msg("Initialised archive repository")
	return nil
}

// Revision is the current head, or "" when nothing is committed.
func (w *Workspace) Revision() string {
	if !w.Repo.IsRepo() {
		return ""
	}
	head, err := w.Repo.Head()
	if err != nil {
		return ""
	}
	return head
}

// Move relocates from to to and journals it under the current revision.
func (w *Workspace) Move(from, to paths.Ref) error {
	return w.relocate(from, to, false)
}

// Revert applies the inverse of record and journals that under the current
// revision.
func (w *Workspace) Revert(record history.Record) (from, to paths.Ref, err error) {
	inverse := record.Inverse()
	if from, err = paths.Parse(inverse.From, w.Roots); err != nil {
		return nil, nil, err
	}
	if to, err = paths.Parse(inverse.To, w.Roots); err != nil {
		return nil, nil, err
	}
	return from, to, w.relocate(from, to, inverse.Undo)
}

func (w *Workspace) relocate(from, to paths.Ref, undo bool) error {
	logger := logging.GetLogger("workspace")

	if err := filesystem.Move(w.FS, from.Abs(), to.Abs()); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot move %s to %s", from.Abs(), to.Abs()).
			WithDetail("from", from.Repr()).
			WithDetail("to", to.Repr())
	}
	logging.LogMutation(logger, "move", from.Abs(), to.Abs())

	return w.Journal.Append(history.Record{
		Revision: w.Revision(),
		Action:   history.ActionMove,
		From:     from.Repr(),
		To:       to.Repr(),
		Undo:     undo,
		At:       w.Clock.Now().UTC(),
	})
}

// Commit records paths plus the registry and journal files. It returns the
// new head, or "" when committing is disabled.
func (w *Workspace) Commit(message string, touched ...string) (string, error) {
	if !w.commit {
		return "", nil
	}
	all := append([]string{w.RegistryPath()}, touched...)
	if filesystem.Exists(w.FS, w.JournalPath()) {
		all = append(all, w.JournalPath())
	}
	head, err := w.Repo.Commit(message, all...)
	if err != nil {
		return "", err
	}
	logger := logging.GetLogger("workspace")
	logger.Info().Str("head", head).Str("message", message).Msg("Committed")
	return head, nil
}
