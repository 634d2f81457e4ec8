// Package ingest drives the batch pipeline: map each raw form response,
// enrich it from the profile API and the applicant's website, and commit the
// record graph one transaction per submission.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/enrich"
	"github.com/venturescout/dealflow/internal/metrics"
	"github.com/venturescout/dealflow/internal/model"
	"github.com/venturescout/dealflow/internal/notify"
	"github.com/venturescout/dealflow/internal/typeform"
)

// ResponseSource supplies the batch of raw form responses.
type ResponseSource interface {
	FetchResponses(ctx context.Context) ([]typeform.Response, error)
}

// ProfileFetcher looks up one profile URL.
type ProfileFetcher interface {
	Fetch(ctx context.Context, profileURL string) enrich.Result[model.Profile]
}

// SiteExtractor scrapes one website.
type SiteExtractor interface {
	Extract(ctx context.Context, siteURL, submissionID string) enrich.Result[model.SiteFacts]
}

// SubmissionTx is one submission's transaction over the record graph.
type SubmissionTx interface {
	UpsertSubmission(ctx context.Context, sub *model.Submission) (int64, error)
	InsertProfile(ctx context.Context, p *model.Profile) error
	InsertSiteFacts(ctx context.Context, f *model.SiteFacts) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store opens per-submission transactions.
type Store interface {
	Begin(ctx context.Context) (SubmissionTx, error)
}

// StoreFunc adapts a begin-transaction closure to the Store interface.
type StoreFunc func(ctx context.Context) (SubmissionTx, error)

// Begin calls f.
func (f StoreFunc) Begin(ctx context.Context) (SubmissionTx, error) { return f(ctx) }

// Summary reports one batch run.
type Summary struct {
	BatchID        string
	Processed      int
	Committed      int
	Failed         int
	ProfilesAdded  int
	SiteFactsAdded int
}

// Orchestrator executes one batch. Submissions are processed sequentially in
// provider order and are fully independent: a failure rolls back that
// submission's transaction and the batch continues.
type Orchestrator struct {
	source   ResponseSource
	mapper   *typeform.Mapper
	profiles ProfileFetcher
	sites    SiteExtractor
	store    Store
	notifier notify.Provider
	logger   *zap.Logger
}

// New constructs an Orchestrator.
func New(
	source ResponseSource,
	mapper *typeform.Mapper,
	profiles ProfileFetcher,
	sites SiteExtractor,
	store Store,
	notifier notify.Provider,
	logger *zap.Logger,
) *Orchestrator {
	if notifier == nil {
		notifier = notify.NoOpProvider{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		source:   source,
		mapper:   mapper,
		profiles: profiles,
		sites:    sites,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Run fetches the batch and processes every response. Only the initial fetch
// is fatal; everything after is submission-local.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	metrics.ObserveBatch()
	summary := Summary{BatchID: uuid.NewString()}
	logger := o.logger.With(zap.String("batch_id", summary.BatchID))

	responses, err := o.source.FetchResponses(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch batch: %w", err)
	}

	for _, resp := range responses {
		summary.Processed++
		outcome, err := o.processResponse(ctx, logger, summary.BatchID, resp)
		if err != nil {
			summary.Failed++
			metrics.ObserveSubmission("failed")
			logger.Error("submission failed",
				zap.String("submission_id", resp.ResponseID),
				zap.Error(err),
			)
			continue
		}
		summary.Committed++
		if outcome.profileAdded {
			summary.ProfilesAdded++
		}
		if outcome.siteFactsAdded {
			summary.SiteFactsAdded++
		}
		metrics.ObserveSubmission("committed")
		logger.Info("submission committed",
			zap.String("submission_id", resp.ResponseID),
			zap.Bool("profile", outcome.profileAdded),
			zap.Bool("site_facts", outcome.siteFactsAdded),
		)
	}

	logger.Info("batch finished",
		zap.Int("processed", summary.Processed),
		zap.Int("committed", summary.Committed),
		zap.Int("failed", summary.Failed),
		zap.Int("profiles_added", summary.ProfilesAdded),
		zap.Int("site_facts_added", summary.SiteFactsAdded),
	)
	return summary, nil
}

type outcome struct {
	profileAdded   bool
	siteFactsAdded bool
}

func (o *Orchestrator) processResponse(
	ctx context.Context,
	logger *zap.Logger,
	batchID string,
	resp typeform.Response,
) (outcome, error) {
	sub := o.mapper.Map(resp)

	tx, err := o.store.Begin(ctx)
	if err != nil {
		return outcome{}, fmt.Errorf("begin submission tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	id, err := tx.UpsertSubmission(ctx, sub)
	if err != nil {
		return outcome{}, err
	}

	var out outcome
	if out.profileAdded, err = o.enrichProfile(ctx, tx, sub, id); err != nil {
		return outcome{}, err
	}
	if out.siteFactsAdded, err = o.enrichSite(ctx, tx, sub, id); err != nil {
		return outcome{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return outcome{}, err
	}
	committed = true

	o.publishCommit(ctx, logger, batchID, sub.SubmissionID, out)
	return out, nil
}

// enrichProfile attempts profile enrichment. A fetch failure never fails the
// submission; only the persistence of a found profile can.
func (o *Orchestrator) enrichProfile(
	ctx context.Context,
	tx SubmissionTx,
	sub *model.Submission,
	submissionID int64,
) (bool, error) {
	if sub.LinkedInURL == "" {
		metrics.ObserveEnrichment("profile", enrich.StatusAbsent.String())
		return false, nil
	}
	start := time.Now()
	res := o.profiles.Fetch(ctx, sub.LinkedInURL)
	metrics.ObserveFetch("profile", time.Since(start))
	metrics.ObserveEnrichment("profile", res.Status.String())
	if res.Status != enrich.StatusFound {
		return false, nil
	}
	res.Value.SubmissionID = submissionID
	if err := tx.InsertProfile(ctx, res.Value); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) enrichSite(
	ctx context.Context,
	tx SubmissionTx,
	sub *model.Submission,
	submissionID int64,
) (bool, error) {
	if sub.Website == "" {
		metrics.ObserveEnrichment("site", enrich.StatusAbsent.String())
		return false, nil
	}
	start := time.Now()
	res := o.sites.Extract(ctx, sub.Website, sub.SubmissionID)
	metrics.ObserveFetch("site", time.Since(start))
	metrics.ObserveEnrichment("site", res.Status.String())
	if res.Status != enrich.StatusFound {
		return false, nil
	}
	res.Value.SubmissionID = submissionID
	if err := tx.InsertSiteFacts(ctx, res.Value); err != nil {
		return false, err
	}
	return true, nil
}

// publishCommit is best-effort: a notification failure is logged but does not
// fail the already-committed submission.
func (o *Orchestrator) publishCommit(
	ctx context.Context,
	logger *zap.Logger,
	batchID, submissionID string,
	out outcome,
) {
	_, err := o.notifier.PublishCommit(ctx, notify.CommitEvent{
		BatchID:      batchID,
		SubmissionID: submissionID,
		Profile:      out.profileAdded,
		SiteFacts:    out.siteFactsAdded,
		CommittedAt:  time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("commit notification failed",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
	}
}
