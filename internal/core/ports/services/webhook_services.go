package services

import (
	"context"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// WebhookNotifierSvc delivers transaction status webhooks.
type WebhookNotifierSvc interface {
	// NotifyTransaction schedules delivery of a status webhook for a
	// transaction to the given URL. Delivery is asynchronous and retried
	// with backoff; a blank URL is a no-op.
	NotifyTransaction(ctx context.Context, txn domain.Transaction, url string) error

	// NotifyJobResult schedules delivery of the final outcome of a queued
	// operation. A nil jobErr reports success with the resulting
	// transaction; otherwise the permanent failure is reported. A blank URL
	// is a no-op.
	NotifyJobResult(ctx context.Context, jobID string, txn *domain.Transaction, jobErr error, url string) error

	// Deliver performs one delivery attempt for a webhook event and records
	// the outcome. It returns the updated event and whether another attempt
	// should be scheduled.
	Deliver(ctx context.Context, event domain.WebhookEvent) (*domain.WebhookEvent, bool, error)
}

// EventPublisherSvc publishes transaction status changes to subscribers.
type EventPublisherSvc interface {
	// PublishStatusChange publishes a status event on the transactions
	// status channel. Best effort; errors are logged, never propagated to
	// the mutation path.
	PublishStatusChange(ctx context.Context, event domain.TransactionStatusEvent) error
}
