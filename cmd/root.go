// Package cmd wires the dealflow CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/config"
	"github.com/venturescout/dealflow/internal/logging"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dealflow",
		Short: "Startup application ingestion and enrichment pipeline.",
		Long: `dealflow ingests startup-application submissions from Typeform,
enriches each with a professional profile and facts scraped from the
applicant's website, and persists the combined record transactionally.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); env vars with prefix DEALFLOW also apply")

	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newDBCmd())

	return cmd
}

// setup loads configuration and builds the shared logger for a subcommand.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, logger, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
