// Package uninstall implements the uninstall command.
package uninstall

import (
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// UninstallOptions holds options for the uninstall command
type UninstallOptions struct {
	Workspace *workspace.Workspace
}

// Uninstall removes the symlink at every registered home path. Regular
// files and directories at those paths are left alone, and so are paths
// inside another tracked entry's home path.
func Uninstall(opts UninstallOptions) (*types.UninstallResult, error) {
	logger := logging.GetLogger("commands.uninstall")
	ws := opts.Workspace

	pairings, err := ws.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	result := &types.UninstallResult{}
	for _, p := range pairings {
		// links inside a tracked directory live in the archive
		if _, covered, err := ws.Registry.FindAncestorOf(p); err != nil {
			return result, err
		} else if covered {
			continue
		}
		home := p.Home.Abs()
		if !filesystem.IsSymlink(ws.FS, home) {
			continue
		}
		if err := ws.FS.Remove(home); err != nil {
			return result, errors.Wrapf(err, errors.ErrIO, "cannot remove link %s", home)
		}
		logger.Debug().Str("link", home).Msg("Removed link")
		result.Removed = append(result.Removed, home)
	}

	logger.Info().Int("removed", len(result.Removed)).Msg("Uninstall finished")
	return result, nil
}
