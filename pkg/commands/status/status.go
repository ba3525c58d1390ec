// Package status implements the status command: pending archive changes
// reported against the home paths they belong to.
package status

import (
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/pairing"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	Workspace *workspace.Workspace
	// Path limits the report to one tracked home path. Empty means the
	// whole archive.
	Path string
}

// Status lists uncommitted changes in the archive. Changes outside every
// tracked entry, such as the registry file itself, are not reported.
func Status(opts StatusOptions) (*types.StatusResult, error) {
	logger := logging.GetLogger("commands.status")
	ws := opts.Workspace

	result := &types.StatusResult{Changes: []types.StatusChange{}}
	scope := ""
	if opts.Path != "" {
		entry, err := ArchiveOf(ws, opts.Path)
		if err != nil {
			return nil, err
		}
		result.Scope = entry.Home.Abs()
		scope = entry.Archive.Abs()
	}

	changes, err := ws.Repo.Status(scope)
	if err != nil {
		return nil, err
	}
	pairings, err := ws.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	for _, c := range changes {
		abs := filepath.Join(ws.Repo.Dir(), filepath.FromSlash(c.Path))
		home, ok := homeOf(pairings, abs)
		if !ok {
			logger.Debug().Str("path", c.Path).Msg("Change outside tracked entries")
			continue
		}
		result.Changes = append(result.Changes, types.StatusChange{Code: c.Code, Home: home, Archive: abs})
	}

	logger.Debug().Int("changes", len(result.Changes)).Msg("Status collected")
	return result, nil
}

// ArchiveOf finds the pairing that holds raw's data: its own registry entry,
// or its place inside a tracked directory.
func ArchiveOf(ws *workspace.Workspace, raw string) (pairing.Pairing, error) {
	home, err := paths.Resolve(raw, paths.HomeSide, ws.Roots)
	if err != nil {
		return pairing.Pairing{}, err
	}
	p, ok, err := ws.Registry.Get(home.Repr())
	if err != nil {
		return pairing.Pairing{}, err
	}
	if ok {
		if !p.IsEntry() {
			return pairing.Pairing{}, errors.Newf(errors.ErrInvalidInput, "%s is a link to %s, use its target", home.Abs(), p.Value()).
				WithDetail("key", p.Key())
		}
		return p, nil
	}

	nested := pairing.Pairing{Home: home, Archive: home}
	ancestor, found, err := ws.Registry.FindAncestorOf(nested)
	if err != nil {
		return pairing.Pairing{}, err
	}
	if found {
		child, err := ancestor.Child(nested)
		if err != nil {
			return pairing.Pairing{}, err
		}
		if filesystem.Exists(ws.FS, child.Archive.Abs()) {
			return child, nil
		}
	}
	return pairing.Pairing{}, errors.Newf(errors.ErrNotTracked, "%s is not tracked", home.Abs()).
		WithDetail("key", home.Repr())
}

// homeOf maps an archive path to the home path it is linked from, using
// the entry with the deepest matching archive path.
func homeOf(pairings []pairing.Pairing, abs string) (string, bool) {
	best := -1
	home := ""
	for _, p := range pairings {
		if !p.IsEntry() {
			continue
		}
		root := p.Archive.Abs()
		if root != abs && !paths.IsWithin(root, abs) {
			continue
		}
		depth := len(paths.Components(p.Archive.Rel()))
		if depth <= best {
			continue
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			continue
		}
		best = depth
		home = filepath.Join(p.Home.Abs(), rel)
	}
	return home, best >= 0
}
