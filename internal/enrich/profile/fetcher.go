// Package profile fetches professional-profile enrichment from the
// people-data API.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/enrich"
	"github.com/venturescout/dealflow/internal/model"
)

// FetcherConfig controls profile API access.
type FetcherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Fetcher performs single-URL profile lookups. Failures are mapped to a
// failed Result and never propagated: enrichment must not abort a submission.
type Fetcher struct {
	cfg    FetcherConfig
	http   *http.Client
	logger *zap.Logger
}

// NewFetcher builds a Fetcher.
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nubela.co/proxycurl/api/v2"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// profileDoc mirrors the provider document. Every key is optional; nested
// collections pass through without schema validation.
type profileDoc struct {
	FullName         string          `json:"full_name"`
	Headline         string          `json:"headline"`
	Summary          string          `json:"summary"`
	Country          string          `json:"country"`
	City             string          `json:"city"`
	Experiences      json.RawMessage `json:"experiences"`
	Education        json.RawMessage `json:"education"`
	Skills           json.RawMessage `json:"skills"`
	Accomplishments  json.RawMessage `json:"accomplishments"`
	ConnectionsCount *int64          `json:"connections_count"`
}

// Fetch looks up one profile URL, requesting cache-first service from the
// provider. Network, non-2xx, and decode failures yield a failed Result.
func (f *Fetcher) Fetch(ctx context.Context, profileURL string) enrich.Result[model.Profile] {
	body, err := f.get(ctx, profileURL)
	if err != nil {
		f.logger.Error("profile fetch failed",
			zap.String("url", profileURL),
			zap.Error(err),
		)
		return enrich.Failed[model.Profile](err)
	}

	var doc profileDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		f.logger.Error("profile decode failed",
			zap.String("url", profileURL),
			zap.Error(err),
		)
		return enrich.Failed[model.Profile](fmt.Errorf("decode profile: %w", err))
	}

	p := &model.Profile{
		CreatedAt:        time.Now().UTC(),
		FullName:         doc.FullName,
		Headline:         doc.Headline,
		Summary:          doc.Summary,
		Country:          doc.Country,
		City:             doc.City,
		Experiences:      doc.Experiences,
		Education:        doc.Education,
		Skills:           doc.Skills,
		Accomplishments:  doc.Accomplishments,
		ConnectionsCount: doc.ConnectionsCount,
		Raw:              body,
	}
	return enrich.Found(p)
}

func (f *Fetcher) get(ctx context.Context, profileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/linkedin", nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	q := req.URL.Query()
	q.Set("url", profileURL)
	q.Set("use_cache", "if-present")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile body: %w", err)
	}
	return body, nil
}
