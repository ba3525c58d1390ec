// Package link implements the link command: registering an extra home path
// that points at something already tracked.
package link

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

// LinkOptions holds options for the link command
type LinkOptions struct {
	Workspace *workspace.Workspace
	// NewHome is the home path the link will be installed at.
	NewHome string
	// Target is what the link points at: an archive path, or a home path
	// that is tracked itself.
	Target string
}

// Link registers NewHome -> Target. The pairing is accepted only when it can
// be reproduced by install on a clean machine, that is when NewHome or Target
// lies inside a tracked entry whose archive already holds the matching file,
// or when Target is itself a tracked location.
func Link(opts LinkOptions) (*types.LinkResult, error) {
	logger := logging.GetLogger("commands.link")
	done := logging.LogOperationStart(logger, "link")
	defer done()

	ws := opts.Workspace
	if err := ws.EnsureRepo(); err != nil {
		return nil, err
	}

	candidate, err := build(ws, opts.NewHome, opts.Target)
	if err != nil {
		return nil, err
	}
	if ws.Registry.ContainsHome(candidate.Key()) {
		return nil, errors.Newf(errors.ErrAlreadyTracked, "%s is already tracked", candidate.Home.Abs()).
			WithDetail("key", candidate.Key())
	}

	existing, err := ws.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	var touched []string
	accepted := false
	for _, e := range existing {
		if ok, carved, err := carveBelow(ws, e, candidate); err != nil {
			return nil, err
		} else if ok {
			touched = append(touched, carved)
			accepted = true
			break
		}
		if related(e, candidate) {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil, errors.Newf(errors.ErrUnrelatedLink,
			"%s is not related to a tracked file or to a tracked file's parent", candidate.Home.Abs()).
			WithDetail("key", candidate.Key()).
			WithDetail("target", candidate.Value())
	}

	if err := ws.Registry.Insert(candidate); err != nil {
		return nil, err
	}
	logger.Info().Str("key", candidate.Key()).Str("value", candidate.Value()).Msg("Registered link")

	commit, err := ws.Commit("link "+filepath.Base(candidate.Home.Abs()), touched...)
	if err != nil {
		return nil, err
	}
	return &types.LinkResult{Key: candidate.Key(), Value: candidate.Value(), Commit: commit}, nil
}

// build resolves the two sides. A target inside the archive root stays an
// archive reference, anything else must be a home path.
func build(ws *workspace.Workspace, newHome, target string) (pairing.Pairing, error) {
	home, err := paths.Resolve(newHome, paths.HomeSide, ws.Roots)
	if err != nil {
		return pairing.Pairing{}, err
	}

	expanded := ws.Roots.Expand(target)
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(ws.Roots.Home, expanded)
	}
	side := paths.HomeSide
	if paths.IsWithin(ws.Roots.Archive, expanded) {
		side = paths.ArchiveSide
	}
	value, err := paths.At(filepath.Clean(expanded), side, ws.Roots)
	if err != nil {
		return pairing.Pairing{}, err
	}
	return pairing.Pairing{Home: home, Archive: value}, nil
}

// carveBelow accepts candidate when it nests inside e and e's archive
// already holds the file it would resolve to. The nested side is the new
// home path, or else the target when that is a home path below e. The file
// is then excepted from e's ignore rules so it gets committed.
func carveBelow(ws *workspace.Workspace, e, candidate pairing.Pairing) (bool, string, error) {
	if !e.IsEntry() || !pairing.IsAncestor(e, candidate) {
		return false, "", nil
	}
	nestedSide := candidate
	if !paths.IsWithin(e.Home.Abs(), candidate.Home.Abs()) {
		if candidate.Archive.Side() != paths.HomeSide || !paths.IsWithin(e.Home.Abs(), candidate.Archive.Abs()) {
			return false, "", nil
		}
		nestedSide = pairing.Pairing{Home: candidate.Archive}
	}
	child, err := e.Child(nestedSide)
	if err != nil {
		return false, "", err
	}
	nested := child.Archive.Abs()
	if !filesystem.Exists(ws.FS, nested) {
		logger := logging.GetLogger("commands.link")
		logger.Debug().
			Str("ancestor", e.Key()).
			Str("missing", nested).
			Msg("Nested inside a tracked entry but not present in the archive")
		return false, "", nil
	}

	root := e.Archive.Abs()
	if err := ws.Ignore.CarveException(nested, root, filesystem.IsDir(ws.FS, nested)); err != nil {
		return false, "", err
	}
	return true, root, nil
}

// related reports whether candidate points straight at e.
func related(e, candidate pairing.Pairing) bool {
	if candidate.Home.Rel() == e.Archive.Rel() {
		return true
	}
	target := candidate.Value()
	return target == e.Key() || target == e.Value()
}
