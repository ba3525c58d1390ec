package dotstash

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstash/pkg/config"
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/workspace"
)

// loadConfig reads the layered configuration from --config-dir, or from the
// default config directory when the flag is unset.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configDir, _ := cmd.Root().PersistentFlags().GetString("config-dir")
	if configDir == "" {
		configDir = config.Dir()
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrConfigLoad, MsgErrLoadConfig)
	}
	return cfg, configDir, nil
}

// openWorkspace builds the workspace every command runs against.
func openWorkspace(cmd *cobra.Command) (*workspace.Workspace, error) {
	cfg, configDir, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	lookup, err := config.Lookup(configDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, MsgErrLoadConfig)
	}

	noCommit, _ := cmd.Root().PersistentFlags().GetBool("no-commit")
	return workspace.Open(workspace.Options{
		Config:   cfg,
		Lookup:   lookup,
		NoCommit: noCommit,
	})
}
