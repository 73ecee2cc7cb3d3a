// Package cmd provides the CLI commands for storage-planner.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storage-planner/core/engine"
	"storage-planner/internal/config"
	"storage-planner/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storage-planner",
		Short: "Estimate film storage and recommend a plan",
		Long: `storage-planner estimates how much storage a film library needs
and recommends the cheapest plan that holds it.

Examples:
  storage-planner estimate --films 12 --minutes 120 --high-res 25
  storage-planner estimate --films 100 --minutes 90 --period monthly --format json
  storage-planner plans --period annual`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.storage-planner.json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newEstimateCmd())
	root.AddCommand(newPlansCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing logging: %v\n", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storage-planner version %s\n", engine.Version)
		},
	}
}
