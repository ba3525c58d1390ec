// Package install implements the install command, which creates the home
// symlink of every registered pairing.
package install

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/pairing"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
	"github.com/rs/zerolog"
)

// InstallOptions holds options for the install command
type InstallOptions struct {
	Workspace *workspace.Workspace
}

// Install links every registered home path to its target, in registry
// order. Paths inside another tracked entry's home path are skipped: the
// ancestor's link already reaches them. Anything already at a home path
// that is not the expected link is renamed to a timestamped backup first.
// The first unexpected I/O failure aborts the run.
func Install(opts InstallOptions) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands.install")
	done := logging.LogOperationStart(logger, "install")
	defer done()

	ws := opts.Workspace
	pairings, err := ws.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	result := &types.InstallResult{}
	for _, p := range pairings {
		if ancestor, covered, err := ws.Registry.FindAncestorOf(p); err != nil {
			return result, err
		} else if covered {
			logger.Debug().Str("key", p.Key()).Str("via", ancestor.Key()).Msg("Reached through a tracked directory")
			continue
		}
		unchanged, backup, err := installOne(ws, logger, p)
		if err != nil {
			return result, err
		}
		if backup != "" {
			result.BackedUp = append(result.BackedUp, types.BackedUp{Path: p.Home.Abs(), Backup: backup})
		}
		if unchanged {
			result.Unchanged = append(result.Unchanged, p.Home.Abs())
		} else {
			result.Installed = append(result.Installed, p.Home.Abs())
		}
	}

	logger.Info().
		Int("installed", len(result.Installed)).
		Int("unchanged", len(result.Unchanged)).
		Int("backed_up", len(result.BackedUp)).
		Msg("Install finished")
	return result, nil
}

func installOne(ws *workspace.Workspace, logger zerolog.Logger, p pairing.Pairing) (unchanged bool, backup string, err error) {
	home := p.Home.Abs()
	target := p.Archive.Abs()

	switch {
	case filesystem.IsSymlink(ws.FS, home) && pointsAt(ws.FS, home, target):
		if err := ws.FS.Remove(home); err != nil {
			return false, "", errors.Wrapf(err, errors.ErrIO, "cannot refresh link %s", home)
		}
		unchanged = true
	case filesystem.Exists(ws.FS, home):
		backup, err = pairing.BackupName(ws.FS, home, ws.Clock, ws.Config.Backup.TimeFormat)
		if err != nil {
			return false, "", err
		}
		if err := ws.FS.Rename(home, backup); err != nil {
			return false, "", errors.Wrapf(err, errors.ErrIO, "cannot back up %s", home).
				WithDetail("backup", backup)
		}
		logging.LogMutation(logger, "backup", home, backup)
	}

	if err := link(ws, target, home); err != nil {
		return false, backup, err
	}
	if !filesystem.Exists(ws.FS, target) {
		logger.Warn().Str("link", home).Str("target", target).Msg("Installed link is dangling")
	}
	logging.LogMutation(logger, "link", target, home)
	return unchanged, backup, nil
}

// link creates home -> target, removing a stale entry or creating the parent
// directory when the first attempt reports one of those.
func link(ws *workspace.Workspace, target, home string) error {
	attempts := ws.Config.Install.MaxAttempts
	var err error
	for i := 0; i < attempts; i++ {
		err = ws.FS.Symlink(target, home)
		switch {
		case err == nil:
			return nil
		case stderrors.Is(err, fs.ErrExist):
			if rmErr := ws.FS.Remove(home); rmErr != nil && !stderrors.Is(rmErr, fs.ErrNotExist) {
				return errors.Wrapf(rmErr, errors.ErrIO, "cannot remove %s", home)
			}
		case stderrors.Is(err, fs.ErrNotExist):
			if mkErr := ws.FS.MkdirAll(filepath.Dir(home), 0755); mkErr != nil {
				return errors.Wrapf(mkErr, errors.ErrIO, "cannot create %s", filepath.Dir(home))
			}
		default:
			return errors.Wrapf(err, errors.ErrIO, "cannot link %s to %s", home, target).
				WithDetail("link", home).
				WithDetail("target", target)
		}
	}
	return errors.Wrapf(err, errors.ErrIO, "cannot link %s to %s after %d attempts", home, target, attempts)
}

func pointsAt(fsys types.FS, link, target string) bool {
	got, err := fsys.Readlink(link)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(got) {
		got = filepath.Join(filepath.Dir(link), got)
	}
	return filepath.Clean(got) == filepath.Clean(target)
}
