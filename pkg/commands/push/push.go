// Package push implements the push command.
package push

import (
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// PushOptions holds options for the push command
type PushOptions struct {
	Workspace *workspace.Workspace
	// URL, when set, becomes the address of the configured remote.
	URL string
}

// Push sends the current branch to the configured remote and makes it the
// upstream. Nothing is pushed when the branch is already up to date.
func Push(opts PushOptions) (*types.PushResult, error) {
	logger := logging.GetLogger("commands.push")
	ws := opts.Workspace
	remote := ws.Config.VCS.Remote

	if !ws.Repo.IsRepo() {
		return nil, errors.Newf(errors.ErrVCS, "%s is not a repository", ws.Roots.Archive)
	}
	if opts.URL != "" {
		if err := ws.Repo.SetRemote(remote, opts.URL); err != nil {
			return nil, err
		}
		logger.Info().Str("remote", remote).Str("url", opts.URL).Msg("Remote set")
	}

	branch := ws.Config.VCS.Branch
	if branch == "" {
		current, err := ws.Repo.CurrentBranch()
		if err != nil {
			return nil, err
		}
		branch = current
	}
	result := &types.PushResult{Remote: remote, Branch: branch}

	upToDate, err := ws.Repo.UpToDate()
	if err != nil {
		return nil, err
	}
	if upToDate {
		logger.Info().Str("remote", remote).Str("branch", branch).Msg("No changes to push")
		return result, nil
	}

	if err := ws.Repo.Push(remote, branch); err != nil {
		if _, urlErr := ws.Repo.RemoteURL(remote); urlErr != nil {
			return nil, errors.Wrapf(err, errors.ErrVCS, "remote %q is not configured", remote).
				WithDetail("hint", "run [code]dotstash push --url <URL>[/code] to set it")
		}
		return nil, err
	}
	result.Pushed = true
	logger.Info().Str("remote", remote).Str("branch", branch).Msg("Pushed")
	return result, nil
}
