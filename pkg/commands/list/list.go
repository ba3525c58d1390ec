// Package list implements the list command.
package list

import (
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// ListOptions holds options for the list command
type ListOptions struct {
	Workspace *workspace.Workspace
}

// List returns every registered pairing in registry order.
func List(opts ListOptions) (*types.ListResult, error) {
	logger := logging.GetLogger("commands.list")

	pairings, err := opts.Workspace.Registry.Pairings()
	if err != nil {
		return nil, err
	}

	result := &types.ListResult{Entries: make([]types.ListEntry, 0, len(pairings))}
	for _, p := range pairings {
		result.Entries = append(result.Entries, types.ListEntry{
			Home:   p.Home.Abs(),
			Target: p.Archive.Abs(),
			Link:   !p.IsEntry(),
		})
	}

	logger.Debug().Int("count", len(result.Entries)).Msg("Listed entries")
	return result, nil
}
