package main

import (
	"github.com/acacha/adminlte-laravel-installer/internal/path"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration install would use, as CUE.

The output can be saved as ~/.config/adminlte-laravel/config.cue and edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig(path.OSEnvironment{})
		if err != nil {
			return err
		}

		out, err := cfg.ToCue()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
