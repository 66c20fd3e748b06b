package commands

import (
	"fmt"

	"github.com/simonhull/firebird-suite/kestrel"
	"github.com/simonhull/firebird-suite/kestrel/internal/config"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfgFile string

	// settings is loaded before any subcommand runs.
	settings = config.DefaultConfig()
)

// RootCmd creates and returns the root command for the Kestrel CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kestrel",
		Short: "Scaffold Express + TypeScript backends",
		Long: `Kestrel generates Express + TypeScript projects and CRUD modules.

• Scaffold a project with pinned dependencies, linting and git hooks
• Generate modules and register their routes in src/app.ts
• Keep track of generated modules in kestrel.yml

Learn more: https://github.com/simonhull/firebird-suite`,
		Version: kestrel.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			settings = cfg

			output.SetVerbose(verbose || cfg.Verbose)
			if cfg.File != "" {
				output.Verbose("config loaded", "file", cfg.File)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/kestrel/config.yaml)")

	return cmd
}
