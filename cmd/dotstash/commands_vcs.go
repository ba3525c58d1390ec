package dotstash

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstash/pkg/commands"
	"github.com/arthur-debert/dotstash/pkg/style"
	"github.com/arthur-debert/dotstash/pkg/types"
)

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "commit <file>",
		Short:             MsgCommitShort,
		Long:              MsgCommitLong,
		Example:           MsgCommitExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "vcs",
		ValidArgsFunction: trackedPathsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Commit(commands.CommitOptions{Workspace: ws, Path: args[0]})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderCommit(result) })
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "undo",
		Short:   MsgUndoShort,
		Long:    MsgUndoLong,
		Example: MsgUndoExample,
		Args:    cobra.NoArgs,
		GroupID: "vcs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			var result *types.UndoResult
			err = refresh(ws, func() error {
				var err error
				result, err = commands.Undo(commands.UndoOptions{Workspace: ws})
				return err
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderUndo(result) })
		},
	}
}

func newCloneCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:     "clone <url>",
		Short:   MsgCloneShort,
		Long:    MsgCloneLong,
		Example: MsgCloneExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "vcs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Clone(commands.CloneOptions{
				Workspace: ws,
				URL:       args[0],
				Branch:    branch,
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderClone(result) })
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", MsgFlagBranch)
	return cmd
}

func newPushCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:     "push",
		Short:   MsgPushShort,
		Long:    MsgPushLong,
		Example: MsgPushExample,
		Args:    cobra.NoArgs,
		GroupID: "vcs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Push(commands.PushOptions{Workspace: ws, URL: url})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderPush(result) })
		},
	}

	cmd.Flags().StringVar(&url, "url", "", MsgFlagURL)
	return cmd
}
