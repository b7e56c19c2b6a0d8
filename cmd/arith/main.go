package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/arith/config"
)

const version = "0.1.0"

var (
	configPath string
	verbose    int
	noColor    bool

	// settings is loaded before any subcommand runs.
	settings = config.Default()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "arith",
		Short:        "Evaluate arithmetic statements",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			settings = cfg

			verbosity := cfg.Verbosity
			if cmd.Flags().Changed("verbose") {
				verbosity = verbose
			}
			commonlog.Configure(verbosity, nil)

			if noColor || !cfg.Color {
				color.NoColor = true
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arith/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more; repeat for more detail")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
