// Package postgres provides Postgres-backed persistence for the submission
// record graph.
package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/venturescout/dealflow/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// StoreConfig controls the Postgres connection pool.
type StoreConfig struct {
	DSN             string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Store writes submission graphs into Postgres. Each submission is persisted
// inside its own transaction via Begin.
type Store struct {
	pool pool
}

// NewStore creates a Postgres-backed Store using the provided config.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: p}, nil
}

// NewStoreWithPool constructs a Store from an existing pool (primarily for
// testing).
func NewStoreWithPool(p pool) (*Store, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Store{pool: p}, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// InitSchema applies the embedded schema. Statements are idempotent.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Begin opens a transaction scoped to one submission. The caller must Commit
// or Rollback; a Tx is never reused after either.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx is a single-submission transaction over the three record kinds.
type Tx struct {
	tx pgx.Tx
}

const upsertSubmissionSQL = `
INSERT INTO submissions (
	submission_id,
	founder_name, founder_title, founder_email, founder_phone,
	linkedin_url, founder_experience,
	company_name, website, description, location, legal_structure,
	problem_statement, solution_statement, unique_value, customer_validation,
	active_users, paying_users, customer_count, mrr,
	funding_stage, round_size, valuation, commitments, lead_investor,
	pitch_deck_url, referral_source,
	raw_response
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
	$21,$22,$23,$24,$25,$26,$27,$28
)
ON CONFLICT (submission_id) DO UPDATE SET
	founder_name = EXCLUDED.founder_name,
	founder_title = EXCLUDED.founder_title,
	founder_email = EXCLUDED.founder_email,
	founder_phone = EXCLUDED.founder_phone,
	linkedin_url = EXCLUDED.linkedin_url,
	founder_experience = EXCLUDED.founder_experience,
	company_name = EXCLUDED.company_name,
	website = EXCLUDED.website,
	description = EXCLUDED.description,
	location = EXCLUDED.location,
	legal_structure = EXCLUDED.legal_structure,
	problem_statement = EXCLUDED.problem_statement,
	solution_statement = EXCLUDED.solution_statement,
	unique_value = EXCLUDED.unique_value,
	customer_validation = EXCLUDED.customer_validation,
	active_users = EXCLUDED.active_users,
	paying_users = EXCLUDED.paying_users,
	customer_count = EXCLUDED.customer_count,
	mrr = EXCLUDED.mrr,
	funding_stage = EXCLUDED.funding_stage,
	round_size = EXCLUDED.round_size,
	valuation = EXCLUDED.valuation,
	commitments = EXCLUDED.commitments,
	lead_investor = EXCLUDED.lead_investor,
	pitch_deck_url = EXCLUDED.pitch_deck_url,
	referral_source = EXCLUDED.referral_source,
	raw_response = EXCLUDED.raw_response,
	updated_at = NOW()
RETURNING id`

// UpsertSubmission writes the submission row and returns its generated
// identifier. A reappearing external submission_id overwrites the previous
// record, and prior enrichment rows are deleted in the same transaction so a
// re-import replaces the whole graph atomically.
func (t *Tx) UpsertSubmission(ctx context.Context, sub *model.Submission) (int64, error) {
	experience, err := json.Marshal(sub.FounderExperience)
	if err != nil {
		return 0, fmt.Errorf("marshal founder experience: %w", err)
	}

	var id int64
	err = t.tx.QueryRow(ctx, upsertSubmissionSQL,
		sub.SubmissionID,
		sub.FounderName, sub.FounderTitle, sub.FounderEmail, sub.FounderPhone,
		sub.LinkedInURL, experience,
		sub.CompanyName, sub.Website, sub.Description, sub.Location, sub.LegalStructure,
		sub.ProblemStatement, sub.SolutionStatement, sub.UniqueValue, sub.CustomerValidation,
		sub.ActiveUsers, sub.PayingUsers, sub.CustomerCount, sub.MRR,
		sub.FundingStage, sub.RoundSize, sub.Valuation, sub.Commitments, sub.LeadInvestor,
		sub.PitchDeckURL, sub.ReferralSource,
		[]byte(sub.RawResponse),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert submission: %w", err)
	}

	if _, err := t.tx.Exec(ctx, `DELETE FROM profiles WHERE submission_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clear prior profile: %w", err)
	}
	if _, err := t.tx.Exec(ctx, `DELETE FROM site_facts WHERE submission_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clear prior site facts: %w", err)
	}

	sub.ID = id
	return id, nil
}

const insertProfileSQL = `
INSERT INTO profiles (
	submission_id,
	full_name, headline, summary, country, city,
	experiences, education, skills, accomplishments,
	connections_count, raw
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

// InsertProfile attaches a profile to its submission inside the transaction.
func (t *Tx) InsertProfile(ctx context.Context, p *model.Profile) error {
	_, err := t.tx.Exec(ctx, insertProfileSQL,
		p.SubmissionID,
		p.FullName, p.Headline, p.Summary, p.Country, p.City,
		rawOrNull(p.Experiences), rawOrNull(p.Education),
		rawOrNull(p.Skills), rawOrNull(p.Accomplishments),
		p.ConnectionsCount, rawOrNull(p.Raw),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

const insertSiteFactsSQL = `
INSERT INTO site_facts (
	submission_id,
	title, description, main_content,
	technologies, team_members, contact_info, social_links, meta_tags, og_tags,
	raw_html
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

// InsertSiteFacts attaches website facts to the submission inside the
// transaction.
func (t *Tx) InsertSiteFacts(ctx context.Context, f *model.SiteFacts) error {
	technologies, err := json.Marshal(f.Technologies)
	if err != nil {
		return fmt.Errorf("marshal technologies: %w", err)
	}
	team, err := json.Marshal(f.TeamMembers)
	if err != nil {
		return fmt.Errorf("marshal team members: %w", err)
	}
	contact, err := json.Marshal(f.Contact)
	if err != nil {
		return fmt.Errorf("marshal contact info: %w", err)
	}
	social, err := json.Marshal(f.SocialLinks)
	if err != nil {
		return fmt.Errorf("marshal social links: %w", err)
	}
	meta, err := json.Marshal(f.MetaTags)
	if err != nil {
		return fmt.Errorf("marshal meta tags: %w", err)
	}
	og, err := json.Marshal(f.OGTags)
	if err != nil {
		return fmt.Errorf("marshal og tags: %w", err)
	}

	_, err = t.tx.Exec(ctx, insertSiteFactsSQL,
		f.SubmissionID,
		f.Title, f.Description, f.MainContent,
		technologies, team, contact, social, meta, og,
		f.RawHTML,
	)
	if err != nil {
		return fmt.Errorf("insert site facts: %w", err)
	}
	return nil
}

// Commit finalizes the submission's transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Rollback abandons the submission's transaction. Calling it after a
// successful commit is a no-op error and safe to ignore.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

func rawOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
