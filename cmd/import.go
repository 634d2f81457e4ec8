package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/config"
	"github.com/venturescout/dealflow/internal/enrich/profile"
	"github.com/venturescout/dealflow/internal/enrich/site"
	"github.com/venturescout/dealflow/internal/ingest"
	"github.com/venturescout/dealflow/internal/metrics"
	"github.com/venturescout/dealflow/internal/notify"
	"github.com/venturescout/dealflow/internal/ops"
	"github.com/venturescout/dealflow/internal/storage/postgres"
	"github.com/venturescout/dealflow/internal/typeform"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Run one ingestion batch.",
		Long: `import fetches all completed form responses, maps and enriches each
submission, and commits the results one transaction per submission. A single
bad submission never aborts the batch; only failure to fetch the response
list is fatal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return runImport(cmd.Context(), cfg, logger)
		},
	}
}

func runImport(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	metrics.Init()

	if cfg.Ops.Enabled {
		opsSrv := ops.NewServer(cfg.Ops.Port, logger)
		opsSrv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			opsSrv.Stop(shutdownCtx)
		}()
	}

	store, err := postgres.NewStore(ctx, postgres.StoreConfig{
		DSN:      cfg.DB.DSN,
		MaxConns: cfg.DB.MaxConns,
	})
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	notifier, err := buildNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("close notifier", zap.Error(err))
		}
	}()

	source := typeform.NewClient(typeform.ClientConfig{
		APIKey:   cfg.Typeform.APIKey,
		FormID:   cfg.Typeform.FormID,
		BaseURL:  cfg.Typeform.BaseURL,
		PageSize: cfg.Typeform.PageSize,
		Timeout:  cfg.TypeformTimeout(),
	}, logger)

	mapper := typeform.NewMapper(typeform.DefaultSchema(), logger)

	profiles := profile.NewFetcher(profile.FetcherConfig{
		APIKey:  cfg.Profile.APIKey,
		BaseURL: cfg.Profile.BaseURL,
		Timeout: cfg.ProfileTimeout(),
	}, logger)

	sites := site.NewExtractor(site.Config{
		UserAgent: cfg.Site.UserAgent,
		Timeout:   cfg.SiteTimeout(),
	}, logger)

	orchestrator := ingest.New(
		source,
		mapper,
		profiles,
		sites,
		ingest.StoreFunc(func(ctx context.Context) (ingest.SubmissionTx, error) {
			return store.Begin(ctx)
		}),
		notifier,
		logger,
	)

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}
	logger.Info("import completed",
		zap.String("batch_id", summary.BatchID),
		zap.Int("committed", summary.Committed),
		zap.Int("failed", summary.Failed),
	)
	return nil
}

func buildNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger) (notify.Provider, error) {
	switch cfg.Notify.Provider {
	case "pubsub":
		logger.Info("using pubsub notifier",
			zap.String("project_id", cfg.Notify.ProjectID),
			zap.String("topic_id", cfg.Notify.TopicID),
		)
		provider, err := notify.NewPubSubProvider(ctx, cfg.Notify.ProjectID, cfg.Notify.TopicID)
		if err != nil {
			return nil, fmt.Errorf("init pubsub notifier: %w", err)
		}
		return provider, nil
	default:
		return notify.NoOpProvider{}, nil
	}
}
