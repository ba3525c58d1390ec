// Package clone implements the clone command, which fetches an existing
// archive onto a new machine.
package clone

import (
	"path"
	"strings"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// CloneOptions holds options for the clone command
type CloneOptions struct {
	Workspace *workspace.Workspace
	URL       string
	// Branch is checked out instead of the remote's default when set.
	Branch string
}

// Clone clones URL into the archive root, which must be absent or empty.
// The registry is re-read from the clone afterwards.
func Clone(opts CloneOptions) (*types.CloneResult, error) {
	logger := logging.GetLogger("commands.clone")
	ws := opts.Workspace

	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a repository url is required")
	}
	if entries, err := ws.FS.ReadDir(ws.Roots.Archive); err == nil && len(entries) > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s already exists and is not empty", ws.Roots.Archive).
			WithDetail("archive", ws.Roots.Archive)
	}

	logger.Info().Str("repository", path.Base(opts.URL)).Str("archive", ws.Roots.Archive).Msg("Cloning")
	if err := ws.Repo.Clone(opts.URL, opts.Branch); err != nil {
		return nil, err
	}
	if err := ws.ReloadRegistry(); err != nil {
		return nil, err
	}

	logger.Info().Int("entries", ws.Registry.Len()).Msg("Cloned archive")
	return &types.CloneResult{URL: opts.URL, Branch: opts.Branch, Dir: ws.Roots.Archive}, nil
}
