package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankman-core/bankman/internal/core/domain"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/core/services"
)

type AggregateServiceTestSuite struct {
	suite.Suite
	aggregateRepo *MockAggregateRepository
	cacheMock     redismock.ClientMock
	service       portssvc.AggregateSvcFacade
	ctx           context.Context
}

func (s *AggregateServiceTestSuite) SetupTest() {
	s.aggregateRepo = new(MockAggregateRepository)
	cache, cacheMock := redismock.NewClientMock()
	// The three per-day keys are written from a map; order is not defined.
	cacheMock.MatchExpectationsInOrder(false)
	s.cacheMock = cacheMock
	s.service = services.NewAggregateService(s.aggregateRepo, cache)
	s.ctx = context.Background()
}

func (s *AggregateServiceTestSuite) expectCacheRefresh(agg *domain.TransactionAggregate, day string) {
	s.cacheMock.ExpectSet("daily_aggregate:"+agg.AccountID+":"+day, agg.AggregatedDailyAmount.String(), 24*time.Hour).SetVal("OK")
	s.cacheMock.ExpectSet("daily_collections:"+agg.AccountID+":"+day, agg.CollectionsAmount.String(), 24*time.Hour).SetVal("OK")
	s.cacheMock.ExpectSet("daily_disbursements:"+agg.AccountID+":"+day, agg.DisbursementsAmount.String(), 24*time.Hour).SetVal("OK")
}

func (s *AggregateServiceTestSuite) TestRecordTransaction_SkipsLiens() {
	for _, txnType := range []domain.TransactionType{domain.TypeLien, domain.TypeLienRelease} {
		err := s.service.RecordTransaction(s.ctx, domain.Transaction{
			TransactionID: uuid.NewString(),
			Type:          txnType,
			Amount:        decimal.NewFromInt(10),
		})
		s.NoError(err)
	}
	s.aggregateRepo.AssertNotCalled(s.T(), "UpsertAggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AggregateServiceTestSuite) TestRecordTransaction_Withdrawal() {
	accountID := uuid.NewString()
	createdAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            domain.TypeWithdrawal,
		SourceAccountID: accountID,
		Amount:          decimal.NewFromInt(120),
		AuditFields:     domain.AuditFields{CreatedAt: createdAt},
	}
	updated := &domain.TransactionAggregate{
		AggregateID:           uuid.NewString(),
		AccountID:             accountID,
		Date:                  day,
		AggregatedDailyAmount: decimal.NewFromInt(120),
		CollectionsAmount:     decimal.Zero,
		DisbursementsAmount:   decimal.NewFromInt(120),
	}

	s.aggregateRepo.On("UpsertAggregate", s.ctx, accountID, day,
		decimal.NewFromInt(120), decimal.Zero, decimal.NewFromInt(120)).Return(updated, nil).Once()
	s.expectCacheRefresh(updated, "2026-03-14")

	err := s.service.RecordTransaction(s.ctx, txn)

	s.Require().NoError(err)
	s.Require().NoError(s.cacheMock.ExpectationsWereMet())
	s.aggregateRepo.AssertExpectations(s.T())
}

func (s *AggregateServiceTestSuite) TestRecordTransaction_TransferCountsDestinationCollection() {
	sourceID := uuid.NewString()
	destinationID := uuid.NewString()
	createdAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		Type:                 domain.TypeTransfer,
		SourceAccountID:      sourceID,
		DestinationAccountID: &destinationID,
		Amount:               decimal.NewFromInt(75),
		AuditFields:          domain.AuditFields{CreatedAt: createdAt},
	}
	sourceAgg := &domain.TransactionAggregate{
		AccountID:             sourceID,
		Date:                  day,
		AggregatedDailyAmount: decimal.NewFromInt(75),
		CollectionsAmount:     decimal.Zero,
		DisbursementsAmount:   decimal.Zero,
	}
	destAgg := &domain.TransactionAggregate{
		AccountID:             destinationID,
		Date:                  day,
		AggregatedDailyAmount: decimal.NewFromInt(75),
		CollectionsAmount:     decimal.NewFromInt(75),
		DisbursementsAmount:   decimal.Zero,
	}

	s.aggregateRepo.On("UpsertAggregate", s.ctx, sourceID, day,
		decimal.NewFromInt(75), decimal.Zero, decimal.Zero).Return(sourceAgg, nil).Once()
	s.aggregateRepo.On("UpsertAggregate", s.ctx, destinationID, day,
		decimal.NewFromInt(75), decimal.NewFromInt(75), decimal.Zero).Return(destAgg, nil).Once()
	s.expectCacheRefresh(sourceAgg, "2026-03-14")
	s.expectCacheRefresh(destAgg, "2026-03-14")

	err := s.service.RecordTransaction(s.ctx, txn)

	s.Require().NoError(err)
	s.aggregateRepo.AssertExpectations(s.T())
}

func (s *AggregateServiceTestSuite) TestGetDailyAggregate_ZeroFilled() {
	accountID := uuid.NewString()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	s.aggregateRepo.On("FindAggregate", s.ctx, accountID, day).Return(nil, nil).Once()

	resp, err := s.service.GetDailyAggregate(s.ctx, accountID, day.Add(5*time.Hour))

	s.Require().NoError(err)
	s.Equal(accountID, resp.AccountID)
	s.Equal(day, resp.Date)
	s.True(resp.TotalAmount.IsZero())
	s.True(resp.CollectionsAmount.IsZero())
	s.True(resp.DisbursementsAmount.IsZero())
}

func (s *AggregateServiceTestSuite) TestDailyDisbursements_CacheHit() {
	accountID := uuid.NewString()
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	key := "daily_disbursements:" + accountID + ":2026-03-14"

	s.cacheMock.ExpectGet(key).SetVal("42.5")

	total, err := s.service.DailyDisbursements(s.ctx, accountID, day)

	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromFloat(42.5)))
	s.aggregateRepo.AssertNotCalled(s.T(), "FindAggregate", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AggregateServiceTestSuite) TestDailyDisbursements_CacheMissFallsBack() {
	accountID := uuid.NewString()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	key := "daily_disbursements:" + accountID + ":2026-03-14"
	agg := &domain.TransactionAggregate{
		AccountID:             accountID,
		Date:                  day,
		AggregatedDailyAmount: decimal.NewFromInt(300),
		CollectionsAmount:     decimal.NewFromInt(100),
		DisbursementsAmount:   decimal.NewFromInt(200),
	}

	s.cacheMock.ExpectGet(key).RedisNil()
	s.aggregateRepo.On("FindAggregate", s.ctx, accountID, day).Return(agg, nil).Once()
	s.expectCacheRefresh(agg, "2026-03-14")

	total, err := s.service.DailyDisbursements(s.ctx, accountID, day)

	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(200)))
	s.Require().NoError(s.cacheMock.ExpectationsWereMet())
}

func (s *AggregateServiceTestSuite) TestDailyDisbursements_NoActivity() {
	accountID := uuid.NewString()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	key := "daily_disbursements:" + accountID + ":2026-03-14"

	s.cacheMock.ExpectGet(key).RedisNil()
	s.aggregateRepo.On("FindAggregate", s.ctx, accountID, day).Return(nil, nil).Once()

	total, err := s.service.DailyDisbursements(s.ctx, accountID, day)

	s.Require().NoError(err)
	s.True(total.IsZero())
}

func TestAggregateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateServiceTestSuite))
}
