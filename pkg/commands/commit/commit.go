// Package commit implements the commit command, which records edits made
// to one tracked file.
package commit

import (
	"github.com/arthur-debert/dotstash/pkg/commands/status"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// CommitOptions holds options for the commit command
type CommitOptions struct {
	Workspace *workspace.Workspace
	Path      string
}

// Commit records the archive copy of Path when it differs from HEAD. The
// command is explicit, so it commits even when automatic commits are off.
func Commit(opts CommitOptions) (*types.CommitResult, error) {
	logger := logging.GetLogger("commands.commit")
	ws := opts.Workspace

	entry, err := status.ArchiveOf(ws, opts.Path)
	if err != nil {
		return nil, err
	}
	archive := entry.Archive.Abs()
	result := &types.CommitResult{Path: entry.Home.Abs()}

	changed, err := ws.Repo.Changed(archive)
	if err != nil {
		return nil, err
	}
	if !changed {
		logger.Info().Str("path", archive).Msg("Nothing to commit")
		result.NothingToCommit = true
		return result, nil
	}

	result.Message = "update " + entry.Archive.Rel()
	result.Commit, err = ws.Repo.Commit(result.Message, archive)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", archive).Str("head", result.Commit).Msg("Committed changes")
	return result, nil
}
