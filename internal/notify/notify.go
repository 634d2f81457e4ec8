// Package notify publishes a notification for every committed submission so
// downstream consumers (scoring, CRM sync) can react without polling the
// database.
package notify

import (
	"context"
	"time"
)

// CommitEvent describes one committed submission graph.
type CommitEvent struct {
	BatchID      string    `json:"batch_id"`
	SubmissionID string    `json:"submission_id"`
	Profile      bool      `json:"profile"`
	SiteFacts    bool      `json:"site_facts"`
	CommittedAt  time.Time `json:"committed_at"`
}

// Provider defines the common interface for the notification layer.
type Provider interface {
	// PublishCommit sends one commit event. It returns the message ID or an
	// error if publishing fails.
	PublishCommit(ctx context.Context, evt CommitEvent) (string, error)

	// Close releases any resources held by the provider.
	Close() error
}

// NoOpProvider discards all notifications. It is the default when no
// messaging backend is configured.
type NoOpProvider struct{}

// PublishCommit for NoOpProvider does nothing and returns a dummy ID.
func (NoOpProvider) PublishCommit(context.Context, CommitEvent) (string, error) {
	return "noop-message-id", nil
}

// Close for NoOpProvider does nothing.
func (NoOpProvider) Close() error { return nil }
