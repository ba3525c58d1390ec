// Package commands provides the command layer of dotstash.
//
// Each command is implemented in its own subdirectory:
//   - add/       - move a file into the archive and track it
//   - install/   - link every tracked home path to the archive
//   - uninstall/ - remove the installed links
//   - link/      - track an extra link onto something already tracked
//   - remove/    - stop tracking a file and move it back home
//   - list/      - list tracked pairings
//   - status/    - pending archive changes per home path
//   - commit/    - commit edits of one tracked file
//   - undo/      - revert the last commit and its file moves
//   - clone/     - clone an archive onto a new machine
//   - push/      - push the archive to its remote
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"github.com/arthur-debert/dotstash/pkg/commands/add"
	"github.com/arthur-debert/dotstash/pkg/commands/clone"
	"github.com/arthur-debert/dotstash/pkg/commands/commit"
	"github.com/arthur-debert/dotstash/pkg/commands/install"
	"github.com/arthur-debert/dotstash/pkg/commands/link"
	"github.com/arthur-debert/dotstash/pkg/commands/list"
	"github.com/arthur-debert/dotstash/pkg/commands/push"
	"github.com/arthur-debert/dotstash/pkg/commands/remove"
	"github.com/arthur-debert/dotstash/pkg/commands/status"
	"github.com/arthur-debert/dotstash/pkg/commands/undo"
	"github.com/arthur-debert/dotstash/pkg/commands/uninstall"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// Add moves a home path into the archive.
type AddOptions = add.AddOptions

func Add(opts AddOptions) (*types.AddResult, error) {
	return add.Add(opts)
}

// Install links every tracked home path.
type InstallOptions = install.InstallOptions

func Install(opts InstallOptions) (*types.InstallResult, error) {
	return install.Install(opts)
}

// Uninstall removes the installed links.
type UninstallOptions = uninstall.UninstallOptions

func Uninstall(opts UninstallOptions) (*types.UninstallResult, error) {
	return uninstall.Uninstall(opts)
}

// Link tracks a link onto an already tracked location.
type LinkOptions = link.LinkOptions

func Link(opts LinkOptions) (*types.LinkResult, error) {
	return link.Link(opts)
}

// Remove stops tracking a home path.
type RemoveOptions = remove.RemoveOptions

func Remove(opts RemoveOptions) (*types.RemoveResult, error) {
	return remove.Remove(opts)
}

// List lists the registry.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*types.ListResult, error) {
	return list.List(opts)
}

// Status reports uncommitted archive changes.
type StatusOptions = status.StatusOptions

func Status(opts StatusOptions) (*types.StatusResult, error) {
	return status.Status(opts)
}

// Commit records edits to one tracked file.
type CommitOptions = commit.CommitOptions

func Commit(opts CommitOptions) (*types.CommitResult, error) {
	return commit.Commit(opts)
}

// Undo reverts the last commit.
type UndoOptions = undo.UndoOptions

func Undo(opts UndoOptions) (*types.UndoResult, error) {
	return undo.Undo(opts)
}

// Clone fetches an archive.
type CloneOptions = clone.CloneOptions

func Clone(opts CloneOptions) (*types.CloneResult, error) {
	return clone.Clone(opts)
}

// Push publishes the archive.
type PushOptions = push.PushOptions

func Push(opts PushOptions) (*types.PushResult, error) {
	return push.Push(opts)
}

// Refresh runs fn between an uninstall and an install, so a mutating
// command never works against installed links. The install runs even when
// fn fails, putting back whatever links the registry still describes. fn's
// error wins over the install's.
func Refresh(ws *workspace.Workspace, fn func() error) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands")

	if _, err := uninstall.Uninstall(uninstall.UninstallOptions{Workspace: ws}); err != nil {
		return nil, err
	}

	fnErr := fn()
	installed, err := install.Install(install.InstallOptions{Workspace: ws})
	if fnErr != nil {
		if err != nil {
			logger.Error().Err(err).Msg("Reinstalling links failed")
		}
		return installed, fnErr
	}
	return installed, err
}
