package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	"github.com/bankman-core/bankman/internal/models"
	"github.com/bankman-core/bankman/internal/utils/mapping"
)

type PgxAggregateRepository struct {
	BaseRepository
}

// newPgxAggregateRepository creates a new repository for daily rollups.
func newPgxAggregateRepository(pool *pgxpool.Pool) portsrepo.AggregateRepositoryFacade {
	return &PgxAggregateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AggregateRepositoryFacade = (*PgxAggregateRepository)(nil)

// FindAggregate retrieves the rollup row for an account and calendar date,
// or nil if none exists yet.
func (r *PgxAggregateRepository) FindAggregate(ctx context.Context, accountID string, date time.Time) (*domain.TransactionAggregate, error) {
	query := `
		SELECT aggregate_id, account_id, date, aggregated_daily_amount, collections_amount, disbursements_amount, created_at, updated_at
		FROM transaction_aggregates
		WHERE account_id = $1 AND date = $2;
	`
	var m models.TransactionAggregate
	err := r.Pool.QueryRow(ctx, query, accountID, date).Scan(
		&m.AggregateID,
		&m.AccountID,
		&m.Date,
		&m.AggregatedDailyAmount,
		&m.CollectionsAmount,
		&m.DisbursementsAmount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find aggregate for account %s: %w", accountID, err)
	}

	agg := mapping.ToDomainAggregate(m)
	return &agg, nil
}

// UpsertAggregate atomically adds the deltas to the rollup row for an
// account and date, creating the row if needed, and returns the row after
// the update. The unique (account_id, date) constraint makes concurrent
// upserts safe.
func (r *PgxAggregateRepository) UpsertAggregate(ctx context.Context, accountID string, date time.Time, total, collections, disbursements decimal.Decimal) (*domain.TransactionAggregate, error) {
	query := `
		INSERT INTO transaction_aggregates (aggregate_id, account_id, date, aggregated_daily_amount, collections_amount, disbursements_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (account_id, date) DO UPDATE
		SET aggregated_daily_amount = transaction_aggregates.aggregated_daily_amount + EXCLUDED.aggregated_daily_amount,
			collections_amount = transaction_aggregates.collections_amount + EXCLUDED.collections_amount,
			disbursements_amount = transaction_aggregates.disbursements_amount + EXCLUDED.disbursements_amount,
			updated_at = EXCLUDED.updated_at
		RETURNING aggregate_id, account_id, date, aggregated_daily_amount, collections_amount, disbursements_amount, created_at, updated_at;
	`
	now := time.Now().UTC()

	var m models.TransactionAggregate
	err := r.Pool.QueryRow(ctx, query, uuid.NewString(), accountID, date, total, collections, disbursements, now).Scan(
		&m.AggregateID,
		&m.AccountID,
		&m.Date,
		&m.AggregatedDailyAmount,
		&m.CollectionsAmount,
		&m.DisbursementsAmount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert aggregate for account %s: %w", accountID, err)
	}

	agg := mapping.ToDomainAggregate(m)
	return &agg, nil
}
