// Package site fetches an applicant's web page and runs a battery of
// heuristic extraction rules over the parsed document.
package site

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/venturescout/dealflow/internal/enrich"
	"github.com/venturescout/dealflow/internal/model"
)

// Config controls page fetching behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Extractor produces SiteFacts from a single page. Everything after a
// successful fetch is best-effort: a rule that finds nothing contributes
// nothing, and a parse failure yields a failed Result, never an abort.
type Extractor struct {
	cfg    Config
	rules  []Rule
	base   *colly.Collector
	logger *zap.Logger
}

// NewExtractor builds an Extractor running the default rule battery.
func NewExtractor(cfg Config, logger *zap.Logger) *Extractor {
	return NewExtractorWithRules(cfg, DefaultRules(), logger)
}

// NewExtractorWithRules builds an Extractor with a custom ordered rule list.
func NewExtractorWithRules(cfg Config, rules []Rule, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		cfg:    cfg,
		rules:  rules,
		base:   newBaseCollector(),
		logger: logger,
	}
}

// Extract fetches siteURL and runs the rule battery. submissionID is the
// owning submission's external identifier, carried for log context only.
func (e *Extractor) Extract(ctx context.Context, siteURL, submissionID string) enrich.Result[model.SiteFacts] {
	body, err := e.fetchPage(ctx, siteURL)
	if err != nil {
		e.logger.Error("site fetch failed",
			zap.String("submission_id", submissionID),
			zap.String("url", siteURL),
			zap.Error(err),
		)
		return enrich.Failed[model.SiteFacts](err)
	}

	facts, err := e.runRules(body)
	if err != nil {
		e.logger.Error("site extraction failed",
			zap.String("submission_id", submissionID),
			zap.String("url", siteURL),
			zap.Error(err),
		)
		return enrich.Failed[model.SiteFacts](err)
	}
	return enrich.Found(facts)
}

// runRules parses the markup and applies every rule in order. A panicking
// rule is converted into an error so one malformed page cannot take down the
// batch.
func (e *Extractor) runRules(body []byte) (facts *model.SiteFacts, err error) {
	defer func() {
		if r := recover(); r != nil {
			facts = nil
			err = fmt.Errorf("extraction panic: %v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	facts = &model.SiteFacts{
		CreatedAt: time.Now().UTC(),
		RawHTML:   string(body),
	}
	for _, rule := range e.rules {
		rule.Apply(doc, facts)
	}
	return facts, nil
}
