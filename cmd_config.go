package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitConfigCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the effective configuration to the config file",
		Long: `Writes the configuration in effect (defaults, file, environment and
flags combined) to the path given by --config, so it can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			if err := a.cfg.Save(a.configPath); err != nil {
				return err
			}
			a.logger.Info("Wrote config", zap.String("path", a.configPath))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
