package services

import (
	"context"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetBalances retrieves the current balance triplet of an account.
	GetBalances(ctx context.Context, accountNumber string) (*dto.BalanceResponse, error)

	// ListBalanceHistory retrieves the paginated balance audit trail of an
	// account, newest first.
	ListBalanceHistory(ctx context.Context, accountNumber string, params dto.ListBalanceHistoryParams) (*dto.ListBalanceHistoryResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces.
// Account opening and lifecycle management live in a separate service;
// this engine only reads accounts and mutates their balances.
type AccountSvcFacade interface {
	AccountReaderSvc
}
