// Package remove implements the remove command, the inverse of add.
package remove

import (
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/pairing"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
	"github.com/rs/zerolog"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	Workspace *workspace.Workspace
	// Path is the tracked home path.
	Path string
}

// Remove stops tracking a home path. Links onto it are dropped first, then
// an archived entry is moved back to where it came from. Registry keys are
// deleted only once the files are in place.
func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	logger := logging.GetLogger("commands.remove")
	done := logging.LogOperationStart(logger, "remove")
	defer done()

	ws := opts.Workspace
	home, err := paths.Resolve(opts.Path, paths.HomeSide, ws.Roots)
	if err != nil {
		return nil, err
	}
	p, ok, err := ws.Registry.Get(home.Repr())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf(errors.ErrNotTracked, "%s is not tracked", home.Abs()).
			WithDetail("key", home.Repr())
	}

	dependents, err := dependentsOf(ws, p)
	if err != nil {
		return nil, err
	}

	result := &types.RemoveResult{Key: p.Key()}
	var touched []string

	for _, d := range dependents {
		// links inside p's own directory travel with it
		if p.IsEntry() && paths.IsWithin(p.Home.Abs(), d.Home.Abs()) {
			continue
		}
		if err := unlink(ws, logger, d.Home.Abs()); err != nil {
			return result, err
		}
	}

	if p.IsEntry() {
		if err := restore(ws, logger, p, result); err != nil {
			return result, err
		}
		touched = append(touched, p.Archive.Abs())
		touched = append(touched, result.RuleFiles...)
	} else if err := unlink(ws, logger, p.Home.Abs()); err != nil {
		return result, err
	}

	for _, d := range dependents {
		if _, err := ws.Registry.Remove(d.Key()); err != nil {
			return result, err
		}
		result.Unlinked = append(result.Unlinked, d.Home.Abs())
	}
	if _, err := ws.Registry.Remove(p.Key()); err != nil {
		return result, err
	}

	result.Commit, err = ws.Commit("remove "+opts.Path, touched...)
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("key", p.Key()).
		Int("dropped", len(result.Unlinked)).
		Str("restored", result.Restored).
		Msg("Removed")
	return result, nil
}

// dependentsOf collects, depth first, everything that stops making sense
// once p is gone: links onto p and onto those links, and entries registered
// inside p's directory.
func dependentsOf(ws *workspace.Workspace, p pairing.Pairing) ([]pairing.Pairing, error) {
	all, err := ws.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{p.Key(): true}
	var out []pairing.Pairing
	var visit func(parent pairing.Pairing)
	visit = func(parent pairing.Pairing) {
		for _, q := range all {
			if seen[q.Key()] {
				continue
			}
			nested := parent.IsEntry() && q.IsEntry() && paths.IsWithin(parent.Home.Abs(), q.Home.Abs())
			if q.IsLinkedTo(parent) || nested {
				seen[q.Key()] = true
				visit(q)
				out = append(out, q)
			}
		}
	}
	visit(p)
	return out, nil
}

// restore moves p's archive copy back to its home path.
func restore(ws *workspace.Workspace, logger zerolog.Logger, p pairing.Pairing, result *types.RemoveResult) error {
	archive := p.Archive.Abs()

	if shared, err := sharedArchive(ws, p); err != nil {
		return err
	} else if shared {
		logger.Info().Str("archive", archive).Msg("Archive copy is shared with another entry, leaving it in place")
		return unlink(ws, logger, p.Home.Abs())
	}

	if filesystem.IsDir(ws.FS, archive) {
		removed, err := ws.Ignore.RemoveRules(archive)
		if err != nil {
			return err
		}
		result.RuleFiles = removed
	}

	home := p.Home.Abs()
	switch {
	case filesystem.IsSymlink(ws.FS, home):
		if err := unlink(ws, logger, home); err != nil {
			return err
		}
	case filesystem.Exists(ws.FS, home):
		name, err := pairing.BackupName(ws.FS, home, ws.Clock, ws.Config.Backup.TimeFormat)
		if err != nil {
			return err
		}
		backup, err := paths.At(name, paths.HomeSide, ws.Roots)
		if err != nil {
			return err
		}
		if err := ws.Move(p.Home, backup); err != nil {
			return err
		}
		result.Backup = name
	}

	if !filesystem.Exists(ws.FS, archive) {
		logger.Warn().Str("archive", archive).Msg("Archive copy is missing, nothing to restore")
		return nil
	}
	if err := ws.Move(p.Archive, p.Home); err != nil {
		return err
	}
	result.Restored = home
	return nil
}

func sharedArchive(ws *workspace.Workspace, p pairing.Pairing) (bool, error) {
	all, err := ws.Registry.Pairings()
	if err != nil {
		return false, err
	}
	for _, q := range all {
		if q.Key() != p.Key() && q.IsEntry() && q.Archive.Abs() == p.Archive.Abs() {
			return true, nil
		}
	}
	return false, nil
}

func unlink(ws *workspace.Workspace, logger zerolog.Logger, path string) error {
	if !filesystem.IsSymlink(ws.FS, path) {
		return nil
	}
	if err := ws.FS.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot remove link %s", path)
	}
	logging.LogMutation(logger, "unlink", path, "")
	return nil
}
