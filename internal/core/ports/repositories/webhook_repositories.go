package repositories

import (
	"context"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// WebhookReader defines read operations for webhook delivery records
type WebhookReader interface {
	// FindEventByWebhookID retrieves the delivery record for a webhook id,
	// or nil if none exists.
	FindEventByWebhookID(ctx context.Context, webhookID string) (*domain.WebhookEvent, error)
}

// WebhookWriter defines write operations for webhook delivery records
type WebhookWriter interface {
	// UpsertEvent writes the delivery record for a webhook id, inserting on
	// first attempt and updating on retries. One row per webhook id.
	UpsertEvent(ctx context.Context, event domain.WebhookEvent) error
}

// WebhookRepositoryFacade combines all webhook repository interfaces
type WebhookRepositoryFacade interface {
	WebhookReader
	WebhookWriter
}
