package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/core/services"
	"github.com/bankman-core/bankman/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	service     portssvc.AccountSvcFacade
	ctx         context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.accountRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TestGetBalances() {
	account := domain.Account{
		AccountID:        uuid.NewString(),
		AccountNumber:    "4000000001",
		CurrencyCode:     "AED",
		Status:           domain.AccountActive,
		LedgerBalance:    decimal.NewFromInt(500),
		AvailableBalance: decimal.NewFromInt(450),
		LockedAmount:     decimal.NewFromInt(50),
	}
	s.accountRepo.On("FindAccountByNumber", s.ctx, account.AccountNumber).Return(&account, nil).Once()

	resp, err := s.service.GetBalances(s.ctx, account.AccountNumber)

	s.Require().NoError(err)
	s.Equal(account.AccountNumber, resp.AccountNumber)
	s.True(resp.LedgerBalance.Equal(decimal.NewFromInt(500)))
	s.True(resp.AvailableBalance.Equal(decimal.NewFromInt(450)))
	s.True(resp.LockedAmount.Equal(decimal.NewFromInt(50)))
	s.False(resp.AsOf.IsZero())
}

func (s *AccountServiceTestSuite) TestGetBalances_NotFound() {
	s.accountRepo.On("FindAccountByNumber", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.GetBalances(s.ctx, "missing")

	s.Require().Error(err)
	s.Nil(resp)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestListBalanceHistory() {
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "4000000002",
	}
	history := []domain.AccountBalanceHistory{
		{
			HistoryID:     uuid.NewString(),
			AccountID:     account.AccountID,
			TransactionID: uuid.NewString(),
			Balances: domain.BalanceSnapshot{
				Ledger:    decimal.NewFromInt(100),
				Available: decimal.NewFromInt(100),
				Locked:    decimal.Zero,
			},
			BalanceDate: time.Now().UTC(),
		},
	}
	next := "page-2"

	s.accountRepo.On("FindAccountByNumber", s.ctx, account.AccountNumber).Return(&account, nil).Once()
	s.accountRepo.On("ListBalanceHistory", s.ctx, account.AccountID, 10, (*string)(nil)).Return(history, next, nil).Once()

	resp, err := s.service.ListBalanceHistory(s.ctx, account.AccountNumber, dto.ListBalanceHistoryParams{Limit: 10})

	s.Require().NoError(err)
	s.Require().Len(resp.History, 1)
	s.Equal(history[0].HistoryID, resp.History[0].HistoryID)
	s.True(resp.History[0].LedgerBalance.Equal(decimal.NewFromInt(100)))
	s.Require().NotNil(resp.NextToken)
	s.Equal(next, *resp.NextToken)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
