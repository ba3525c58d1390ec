// Package undo implements the undo command. It reverts the last commit of
// the archive: the registry and ignore rules come back from the previous
// revision, and the file moves journaled for it are played backwards.
package undo

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/history"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

const previous = "HEAD^"

// UndoOptions holds options for the undo command
type UndoOptions struct {
	Workspace *workspace.Workspace
}

// Undo reverts the most recent commit and records the revert as a new one.
// Rule files the reverted commit created are deleted, and other files it
// added that are still in the archive leave the index.
func Undo(opts UndoOptions) (*types.UndoResult, error) {
	logger := logging.GetLogger("commands.undo")
	done := logging.LogOperationStart(logger, "undo")
	defer done()

	ws := opts.Workspace
	if !ws.Repo.IsRepo() {
		return nil, errors.Newf(errors.ErrVCS, "%s is not a repository, nothing to undo", ws.Roots.Archive)
	}

	message, err := ws.Repo.HeadMessage()
	if err != nil {
		return nil, err
	}
	rev, err := ws.Repo.Revision(previous)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "nothing to undo").
			WithDetail("head", message)
	}
	records, err := ws.Journal.ForRevision(rev)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("revision", rev).Int("moves", len(records)).Msg("Reverting")

	if err := ws.Repo.CheckoutFile(previous, ws.RegistryPath()); err != nil {
		return nil, err
	}

	result := &types.UndoResult{Reverted: message, Revision: rev}
	var touched, restored []string
	for i := len(records) - 1; i >= 0; i-- {
		if err := clearLink(ws, records[i].From); err != nil {
			return result, err
		}
		if err := stripLeaving(ws, records[i]); err != nil {
			return result, err
		}
		from, to, err := ws.Revert(records[i])
		if err != nil {
			return result, err
		}
		result.Moves = append(result.Moves, types.Relocation{Key: homeSide(from, to), From: from.Repr(), To: to.Repr()})
		for _, ref := range []paths.Ref{from, to} {
			if ref.Side() == paths.ArchiveSide {
				touched = append(touched, ref.Abs())
			}
		}
		if to.Side() == paths.ArchiveSide && filesystem.IsDir(ws.FS, to.Abs()) {
			restored = append(restored, to.Abs())
		}
	}

	added, err := ws.Repo.Added(previous)
	if err != nil {
		return result, err
	}
	isNew := make(map[string]bool, len(added))
	for _, file := range added {
		isNew[file] = true
	}

	ruleFiles, err := candidateRuleFiles(ws, restored)
	if err != nil {
		return result, err
	}
	for _, file := range ruleFiles {
		if isNew[file] {
			if filesystem.Exists(ws.FS, file) {
				if err := ws.FS.Remove(file); err != nil {
					return result, errors.Wrapf(err, errors.ErrIO, "cannot remove %s", file)
				}
				logging.LogMutation(logger, "delete", file, "")
			}
			touched = append(touched, file)
			continue
		}
		if err := ws.Repo.CheckoutFile(previous, file); err != nil {
			logger.Debug().Err(err).Str("file", file).Msg("Rule file not in previous revision")
			continue
		}
		touched = append(touched, file)
	}

	// Files placed in the archive by the reverted commit stay on disk, out
	// of the index.
	var untrack []string
	for _, file := range added {
		if file == ws.RegistryPath() || file == ws.JournalPath() || !filesystem.Exists(ws.FS, file) {
			continue
		}
		untrack = append(untrack, file)
	}
	if len(untrack) > 0 {
		if err := ws.Repo.Untrack(untrack...); err != nil {
			return result, err
		}
		logger.Debug().Strs("files", untrack).Msg("Untracked files added by the reverted commit")
	}

	if err := ws.ReloadRegistry(); err != nil {
		return result, err
	}

	result.Commit, err = ws.Commit(`revert "`+message+`"`, touched...)
	if err != nil {
		return result, err
	}

	logger.Info().Str("reverted", message).Str("revision", rev).Int("moves", len(result.Moves)).Msg("Undone")
	return result, nil
}

// clearLink removes an installed link standing where a move is about to
// put data back.
func clearLink(ws *workspace.Workspace, repr string) error {
	dest, err := paths.Parse(repr, ws.Roots)
	if err != nil {
		return err
	}
	if !filesystem.IsSymlink(ws.FS, dest.Abs()) {
		return nil
	}
	if err := ws.FS.Remove(dest.Abs()); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot remove link %s", dest.Abs())
	}
	return nil
}

// stripLeaving drops the rules dotstash wrote into a directory that is
// about to leave the archive.
func stripLeaving(ws *workspace.Workspace, record history.Record) error {
	src, err := paths.Parse(record.To, ws.Roots)
	if err != nil {
		return err
	}
	dest, err := paths.Parse(record.From, ws.Roots)
	if err != nil {
		return err
	}
	if src.Side() != paths.ArchiveSide || dest.Side() != paths.HomeSide || !filesystem.IsDir(ws.FS, src.Abs()) {
		return nil
	}
	_, err = ws.Ignore.StripRules(src.Abs())
	return err
}

func homeSide(refs ...paths.Ref) string {
	for _, ref := range refs {
		if ref.Side() == paths.HomeSide {
			return ref.Repr()
		}
	}
	return ""
}

// candidateRuleFiles lists the rule files present in the archive plus the
// places rule files may have been deleted from below restored directories.
func candidateRuleFiles(ws *workspace.Workspace, restored []string) ([]string, error) {
	existing, err := ws.Ignore.RuleFiles(ws.Roots.Archive)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{}
	add := func(file string) {
		if !seen[file] {
			seen[file] = true
			out = append(out, file)
		}
	}
	for _, file := range existing {
		add(file)
	}
	for _, dir := range restored {
		if err := eachDir(ws, dir, func(d string) { add(filepath.Join(d, ws.Ignore.FileName)) }); err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func eachDir(ws *workspace.Workspace, dir string, fn func(string)) error {
	fn(dir)
	entries, err := ws.FS.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot list %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := eachDir(ws, filepath.Join(dir, entry.Name()), fn); err != nil {
				return err
			}
		}
	}
	return nil
}
