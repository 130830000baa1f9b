package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// AggregateReader defines read operations for daily transaction rollups
type AggregateReader interface {
	// FindAggregate retrieves the rollup row for an account and calendar
	// date, or nil if none exists yet.
	FindAggregate(ctx context.Context, accountID string, date time.Time) (*domain.TransactionAggregate, error)
}

// AggregateWriter defines write operations for daily transaction rollups
type AggregateWriter interface {
	// UpsertAggregate atomically adds the deltas to the rollup row for an
	// account and date, creating the row if it does not exist, and returns
	// the row after the update.
	UpsertAggregate(ctx context.Context, accountID string, date time.Time, total, collections, disbursements decimal.Decimal) (*domain.TransactionAggregate, error)
}

// AggregateRepositoryFacade combines all aggregate repository interfaces
type AggregateRepositoryFacade interface {
	AggregateReader
	AggregateWriter
}
