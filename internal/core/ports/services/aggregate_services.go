package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/dto"
)

// AggregateRecorderSvc maintains the per-account daily rollups.
type AggregateRecorderSvc interface {
	// RecordTransaction folds a completed transaction into the daily rollup
	// of every account it touched and refreshes the cached totals. Liens
	// and lien releases are ignored.
	RecordTransaction(ctx context.Context, txn domain.Transaction) error
}

// AggregateReaderSvc defines read operations for daily rollups
type AggregateReaderSvc interface {
	// GetDailyAggregate retrieves the rollup for an account and date. A day
	// with no activity returns zero totals.
	GetDailyAggregate(ctx context.Context, accountID string, date time.Time) (*dto.DailyAggregateResponse, error)

	// DailyDisbursements returns today's disbursed total for an account,
	// served from cache when possible. The engine uses it to enforce daily
	// transaction limits.
	DailyDisbursements(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error)
}

// AggregateSvcFacade combines all aggregate-related service interfaces
type AggregateSvcFacade interface {
	AggregateRecorderSvc
	AggregateReaderSvc
}
