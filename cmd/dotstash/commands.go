package dotstash

import (
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstash/internal/version"
	"github.com/arthur-debert/dotstash/pkg/cobrax/topics"
	"github.com/arthur-debert/dotstash/pkg/commands"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/style"
	"github.com/arthur-debert/dotstash/pkg/types"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		noCommit  bool
		format    string
		configDir string
	)

	rootCmd := &cobra.Command{
		Use:     "dotstash",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&noCommit, "no-commit", false, MsgFlagNoCommit)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", MsgFlagConfigDir)

	// Replaced by the topics help command below
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "vcs",
		Title: "HISTORY AND SYNC:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	helpFiles, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, helpFiles, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// refresh runs a mutating command between uninstall and install, reporting
// anything the reinstall had to move aside.
func refresh(ws *workspace.Workspace, fn func() error) error {
	installed, err := commands.Refresh(ws, fn)
	if installed != nil {
		for _, b := range installed.BackedUp {
			log.Warn().Str("path", b.Path).Str("backup", b.Backup).Msg("Moved aside before linking")
		}
	}
	return err
}

// trackedPathsCompletion completes the home paths in the registry
func trackedPathsCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	result, err := commands.List(commands.ListOptions{Workspace: ws})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	homes := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		homes = append(homes, e.Home)
	}
	return homes, cobra.ShellCompDirectiveNoFileComp
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <file>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			var result *types.AddResult
			err = refresh(ws, func() error {
				var err error
				result, err = commands.Add(commands.AddOptions{Workspace: ws, Path: args[0]})
				return err
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderAdd(result) })
		},
	}
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Install(commands.InstallOptions{Workspace: ws})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderInstall(result) })
		},
	}
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		Long:    MsgUninstallLong,
		Example: MsgUninstallExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Uninstall(commands.UninstallOptions{Workspace: ws})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderUninstall(result) })
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link <new> <target>",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			var result *types.LinkResult
			err = refresh(ws, func() error {
				var err error
				result, err = commands.Link(commands.LinkOptions{
					Workspace: ws,
					NewHome:   args[0],
					Target:    args[1],
				})
				return err
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderLink(result) })
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <file>",
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: trackedPathsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			var result *types.RemoveResult
			err = refresh(ws, func() error {
				var err error
				result, err = commands.Remove(commands.RemoveOptions{Workspace: ws, Path: args[0]})
				return err
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderRemove(result) })
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			result, err := commands.List(commands.ListOptions{Workspace: ws})
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderList(result) })
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "status [file]",
		Short:             MsgStatusShort,
		Long:              MsgStatusLong,
		Example:           MsgStatusExample,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "core",
		ValidArgsFunction: trackedPathsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}

			opts := commands.StatusOptions{Workspace: ws}
			if len(args) == 1 {
				opts.Path = args[0]
			}
			result, err := commands.Status(opts)
			if err != nil {
				return err
			}
			return printResult(cmd, result, func(r style.Renderer) string { return r.RenderStatus(result) })
		},
	}
}
