package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	"github.com/bankman-core/bankman/internal/models"
	"github.com/bankman-core/bankman/internal/utils/mapping"
)

type PgxWebhookRepository struct {
	BaseRepository
}

// newPgxWebhookRepository creates a new repository for webhook delivery records.
func newPgxWebhookRepository(pool *pgxpool.Pool) portsrepo.WebhookRepositoryFacade {
	return &PgxWebhookRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WebhookRepositoryFacade = (*PgxWebhookRepository)(nil)

// FindEventByWebhookID retrieves the delivery record for a webhook id, or
// nil if none exists.
func (r *PgxWebhookRepository) FindEventByWebhookID(ctx context.Context, webhookID string) (*domain.WebhookEvent, error) {
	query := `
		SELECT event_id, webhook_id, url, payload, status, attempt, response_status, response_body, error_message,
			scheduled_at, delivered_at, failed_at, created_at, updated_at
		FROM webhook_events
		WHERE webhook_id = $1;
	`
	var m models.WebhookEvent
	err := r.Pool.QueryRow(ctx, query, webhookID).Scan(
		&m.EventID,
		&m.WebhookID,
		&m.URL,
		&m.Payload,
		&m.Status,
		&m.Attempt,
		&m.ResponseStatus,
		&m.ResponseBody,
		&m.ErrorMessage,
		&m.ScheduledAt,
		&m.DeliveredAt,
		&m.FailedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find webhook event %s: %w", webhookID, err)
	}

	event := mapping.ToDomainWebhookEvent(m)
	return &event, nil
}

// UpsertEvent writes the delivery record for a webhook id, inserting on
// first attempt and updating on retries. One row per webhook id.
func (r *PgxWebhookRepository) UpsertEvent(ctx context.Context, event domain.WebhookEvent) error {
	m := mapping.ToModelWebhookEvent(event)

	query := `
		INSERT INTO webhook_events (event_id, webhook_id, url, payload, status, attempt, response_status, response_body, error_message,
			scheduled_at, delivered_at, failed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (webhook_id) DO UPDATE
		SET status = EXCLUDED.status,
			attempt = EXCLUDED.attempt,
			response_status = EXCLUDED.response_status,
			response_body = EXCLUDED.response_body,
			error_message = EXCLUDED.error_message,
			scheduled_at = EXCLUDED.scheduled_at,
			delivered_at = EXCLUDED.delivered_at,
			failed_at = EXCLUDED.failed_at,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EventID,
		m.WebhookID,
		m.URL,
		m.Payload,
		m.Status,
		m.Attempt,
		m.ResponseStatus,
		m.ResponseBody,
		m.ErrorMessage,
		m.ScheduledAt,
		m.DeliveredAt,
		m.FailedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert webhook event %s: %w", m.WebhookID, err)
	}
	return nil
}
