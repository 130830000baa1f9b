package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

const aggregateCacheTTL = 24 * time.Hour

// aggregateService maintains the per-account daily rollups used for limit
// enforcement. The database row is the source of truth; Redis carries the
// current totals so limit checks rarely touch the rollup table.
type aggregateService struct {
	aggregateRepo portsrepo.AggregateRepositoryFacade
	cache         *redis.Client
}

// NewAggregateService creates a new AggregateService.
func NewAggregateService(aggregateRepo portsrepo.AggregateRepositoryFacade, cache *redis.Client) portssvc.AggregateSvcFacade {
	return &aggregateService{aggregateRepo: aggregateRepo, cache: cache}
}

var _ portssvc.AggregateSvcFacade = (*aggregateService)(nil)

func aggregateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func cacheKey(prefix, accountID string, date time.Time) string {
	return prefix + ":" + accountID + ":" + date.Format("2006-01-02")
}

// RecordTransaction folds a completed transaction into the daily rollup of
// every account it touched. The destination leg of a transfer counts as a
// collection for the destination account. Liens and lien releases are
// ignored.
func (s *aggregateService) RecordTransaction(ctx context.Context, txn domain.Transaction) error {
	if !domain.CountsTowardAggregates(txn.Type) {
		return nil
	}

	date := aggregateDay(txn.CreatedAt)

	collections := decimal.Zero
	disbursements := decimal.Zero
	if domain.IsCollection(txn.Type) {
		collections = txn.Amount
	}
	if domain.IsDisbursement(txn.Type) {
		disbursements = txn.Amount
	}

	updated, err := s.aggregateRepo.UpsertAggregate(ctx, txn.SourceAccountID, date, txn.Amount, collections, disbursements)
	if err != nil {
		return err
	}
	s.refreshCache(ctx, updated)

	if txn.Type == domain.TypeTransfer && txn.DestinationAccountID != nil {
		updated, err := s.aggregateRepo.UpsertAggregate(ctx, *txn.DestinationAccountID, date, txn.Amount, txn.Amount, decimal.Zero)
		if err != nil {
			return err
		}
		s.refreshCache(ctx, updated)
	}
	return nil
}

// refreshCache writes the rollup's three totals under their daily keys.
// Cache failures are logged and swallowed; the table remains authoritative.
func (s *aggregateService) refreshCache(ctx context.Context, agg *domain.TransactionAggregate) {
	if s.cache == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	entries := map[string]decimal.Decimal{
		cacheKey("daily_aggregate", agg.AccountID, agg.Date):     agg.AggregatedDailyAmount,
		cacheKey("daily_collections", agg.AccountID, agg.Date):   agg.CollectionsAmount,
		cacheKey("daily_disbursements", agg.AccountID, agg.Date): agg.DisbursementsAmount,
	}
	for key, value := range entries {
		if err := s.cache.Set(ctx, key, value.String(), aggregateCacheTTL).Err(); err != nil {
			logger.Warn("aggregate cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

// GetDailyAggregate retrieves the rollup for an account and date. A day
// with no activity returns zero totals.
func (s *aggregateService) GetDailyAggregate(ctx context.Context, accountID string, date time.Time) (*dto.DailyAggregateResponse, error) {
	day := aggregateDay(date)

	agg, err := s.aggregateRepo.FindAggregate(ctx, accountID, day)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		agg = &domain.TransactionAggregate{
			AccountID:             accountID,
			Date:                  day,
			AggregatedDailyAmount: decimal.Zero,
			CollectionsAmount:     decimal.Zero,
			DisbursementsAmount:   decimal.Zero,
		}
	}
	resp := dto.ToDailyAggregateResponse(agg)
	return &resp, nil
}

// DailyDisbursements returns the disbursed total for an account and date,
// served from cache when possible.
func (s *aggregateService) DailyDisbursements(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error) {
	day := aggregateDay(date)
	key := cacheKey("daily_disbursements", accountID, day)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			if value, parseErr := decimal.NewFromString(raw); parseErr == nil {
				return value, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("aggregate cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	agg, err := s.aggregateRepo.FindAggregate(ctx, accountID, day)
	if err != nil {
		return decimal.Zero, err
	}
	if agg == nil {
		return decimal.Zero, nil
	}
	s.refreshCache(ctx, agg)
	return agg.DisbursementsAmount, nil
}
