package add

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

// AddOptions holds options for the add command
type AddOptions struct {
	Workspace *workspace.Workspace
	// Path is the home-side file or directory to track.
	Path string
}

// Add moves a home file or directory into the archive and registers it.
//
// A path that cannot be moved because it already lives inside a tracked
// directory is registered in place: its archive location is derived from
// the tracked ancestor and an ignore exception is carved for it.
func Add(opts AddOptions) (*types.AddResult, error) {
	logger := logging.GetLogger("commands.add")
	done := logging.LogOperationStart(logger, "add")
	defer done()

	ws := opts.Workspace
	if err := ws.EnsureRepo(); err != nil {
		return nil, err
	}

	// Normalize
	entry, err := pairing.ForFile(opts.Path, ws.Roots)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("key", entry.Key()).Str("value", entry.Value()).Msg("Normalized path")
	if err := checkNotArchive(ws, entry); err != nil {
		return nil, err
	}

	// CheckDuplicate
	if err := checkDuplicate(ws, entry); err != nil {
		return nil, err
	}

	// ResolveSymlinkSource
	if filesystem.IsSymlink(ws.FS, entry.Home.Abs()) {
		resolved, err := pairing.ResolveLinkSource(ws.FS, entry, ws.Roots)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("link", entry.Key()).Str("source", resolved.Key()).Msg("Archiving the link's source instead of the link")
		entry = resolved
		if err := checkNotArchive(ws, entry); err != nil {
			return nil, err
		}
		if err := checkDuplicate(ws, entry); err != nil {
			return nil, err
		}
	}

	result := &types.AddResult{Key: entry.Key(), Value: entry.Value(), Source: entry.Home.Abs()}

	ancestor, nested, err := ws.Registry.FindAncestorOf(entry)
	if err != nil {
		return nil, err
	}
	if nested || !filesystem.Exists(ws.FS, entry.Home.Abs()) {
		return addBelowAncestor(ws, logger, entry, ancestor, nested, opts.Path, result)
	}

	// ResolveCollision
	touched := []string{}
	if filesystem.Exists(ws.FS, entry.Archive.Abs()) {
		backup, err := backupExisting(ws, entry.Archive)
		if err != nil {
			return nil, err
		}
		result.Backup = backup.Abs()
		touched = append(touched, backup.Abs())
	}

	// Relocate
	isDir := filesystem.IsDir(ws.FS, entry.Home.Abs())
	result.Directory = isDir
	if err := ws.Move(entry.Home, entry.Archive); err != nil {
		return nil, err
	}
	touched = append(touched, entry.Archive.Abs())

	// OnSuccess
	if isDir {
		adopted, moved, err := adoptChildren(ws, logger, entry)
		if err != nil {
			return nil, err
		}
		result.Adopted = adopted
		touched = append(touched, moved...)
	}

	if err := ws.Registry.Insert(entry); err != nil {
		return nil, err
	}

	result.Commit, err = ws.Commit("add "+entry.Home.Rel(), touched...)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("key", result.Key).
		Str("value", result.Value).
		Bool("directory", result.Directory).
		Int("adopted", len(result.Adopted)).
		Msg("Added")
	return result, nil
}

func checkDuplicate(ws *workspace.Workspace, entry pairing.Pairing) error {
	if ws.Registry.ContainsHome(entry.Key()) {
		return errors.Newf(errors.ErrAlreadyTracked, "%s is already tracked", entry.Home.Abs()).
			WithDetail("key", entry.Key())
	}
	return nil
}

// checkNotArchive rejects paths that are, or contain, the archive root.
func checkNotArchive(ws *workspace.Workspace, entry pairing.Pairing) error {
	home := entry.Home.Abs()
	if home == ws.Roots.Archive || paths.IsWithin(home, ws.Roots.Archive) || paths.IsWithin(ws.Roots.Archive, home) {
		return errors.Newf(errors.ErrInvalidPath, "%s overlaps the archive %s", home, ws.Roots.Archive).
			WithDetail("path", home)
	}
	return nil
}

// addBelowAncestor registers entry inside the tracked directory ancestor,
// whose archive copy already holds the file.
func addBelowAncestor(ws *workspace.Workspace, logger zerolog.Logger, entry, ancestor pairing.Pairing, found bool, raw string, result *types.AddResult) (*types.AddResult, error) {
	if !found {
		return nil, errors.Newf(errors.ErrEntryNotFound, "%s does not exist and is not inside a tracked directory", raw).
			WithDetail("path", entry.Home.Abs())
	}

	child, err := ancestor.Child(entry)
	if err != nil {
		return nil, err
	}
	target := child.Archive.Abs()
	if !filesystem.Exists(ws.FS, target) {
		return nil, errors.Newf(errors.ErrEntryNotFound, "%s is not in the archive copy of %s", raw, ancestor.Home.Abs()).
			WithDetail("path", target)
	}
	if ws.Registry.ContainsHome(child.Key()) {
		return nil, errors.Newf(errors.ErrAlreadyTracked, "%s is already tracked", child.Home.Abs())
	}

	if err := ws.Ignore.CarveException(target, ancestor.Archive.Abs(), filesystem.IsDir(ws.FS, target)); err != nil {
		return nil, err
	}
	if err := ws.Registry.Insert(child); err != nil {
		return nil, err
	}

	result.Key = child.Key()
	result.Value = child.Value()
	result.Directory = filesystem.IsDir(ws.FS, target)
	result.Placed = true

	result.Commit, err = ws.Commit("add "+child.Home.Rel(), ancestor.Archive.Abs())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("key", child.Key()).
		Str("value", child.Value()).
		Str("ancestor", ancestor.Key()).
		Msg("Registered inside tracked directory")
	return result, nil
}

// backupExisting moves whatever occupies archive aside and keeps a pairing
// that owned it pointing at its new name.
func backupExisting(ws *workspace.Workspace, archive paths.Ref) (paths.Ref, error) {
	owner, owned, err := ws.Registry.OwnerOf(archive.Abs())
	if err != nil {
		return nil, err
	}

	name, err := pairing.BackupName(ws.FS, archive.Abs(), ws.Clock, ws.Config.Backup.TimeFormat)
	if err != nil {
		return nil, err
	}
	backup, err := paths.At(name, paths.ArchiveSide, ws.Roots)
	if err != nil {
		return nil, err
	}
	if err := ws.Move(archive, backup); err != nil {
		return nil, err
	}

	if owned {
		owner.Archive = backup
		if err := ws.Registry.Replace(owner); err != nil {
			return nil, err
		}
	}
	return backup, nil
}

// adoptChildren moves top-level entries that belong inside the newly added
// directory below its archive copy and re-registers them there. It returns
// the relocations and the archive paths they vacated.
func adoptChildren(ws *workspace.Workspace, logger zerolog.Logger, dir pairing.Pairing) ([]types.Relocation, []string, error) {
	if err := ws.Ignore.SeedExclusions(dir.Archive.Abs()); err != nil {
		return nil, nil, err
	}

	existing, err := ws.Registry.Pairings()
	if err != nil {
		return nil, nil, err
	}

	var adopted []types.Relocation
	var vacated []string
	for _, e := range existing {
		if !e.IsTopLevel() || !pairing.IsAncestor(dir, e) {
			continue
		}

		child, err := dir.Child(e)
		if err != nil {
			return nil, nil, err
		}
		target := child.Archive.Abs()

		// The directory may have carried the child's installed link along.
		if filesystem.IsSymlink(ws.FS, target) {
			if err := ws.FS.Remove(target); err != nil {
				return nil, nil, errors.Wrapf(err, errors.ErrIO, "cannot remove stale link %s", target)
			}
		} else if filesystem.Exists(ws.FS, target) {
			if _, err := backupExisting(ws, child.Archive); err != nil {
				return nil, nil, err
			}
		}

		if err := ws.Move(e.Archive, child.Archive); err != nil {
			return nil, nil, err
		}
		if _, err := ws.Registry.Remove(e.Key()); err != nil {
			return nil, nil, err
		}
		if err := ws.Ignore.CarveException(target, dir.Archive.Abs(), filesystem.IsDir(ws.FS, target)); err != nil {
			return nil, nil, err
		}
		if err := ws.Registry.Insert(child); err != nil {
			return nil, nil, err
		}

		logger.Info().Str("key", e.Key()).Str("from", e.Value()).Str("to", child.Value()).Msg("Moved entry into new directory")
		adopted = append(adopted, types.Relocation{Key: e.Key(), From: e.Value(), To: child.Value()})
		vacated = append(vacated, e.Archive.Abs())
	}
	return adopted, vacated, nil
}
