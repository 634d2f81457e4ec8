package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venturescout/dealflow/internal/storage/postgres"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance commands.",
	}
	cmd.AddCommand(newDBInitCmd(), newDBPingCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Apply the database schema.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			store, err := postgres.NewStore(cmd.Context(), postgres.StoreConfig{
				DSN:      cfg.DB.DSN,
				MaxConns: cfg.DB.MaxConns,
			})
			if err != nil {
				return fmt.Errorf("init store: %w", err)
			}
			defer store.Close()

			if err := store.InitSchema(cmd.Context()); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}
}

func newDBPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			store, err := postgres.NewStore(cmd.Context(), postgres.StoreConfig{
				DSN:      cfg.DB.DSN,
				MaxConns: cfg.DB.MaxConns,
			})
			if err != nil {
				return fmt.Errorf("init store: %w", err)
			}
			defer store.Close()

			if err := store.Ping(cmd.Context()); err != nil {
				return err
			}
			logger.Info("database reachable")
			return nil
		},
	}
}
