package services

import (
	"context"
	"time"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
)

// accountService serves the read side of accounts: balances and history.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByNumber retrieves an account by its account number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// GetBalances retrieves the current balance triplet of an account.
func (s *accountService) GetBalances(ctx context.Context, accountNumber string) (*dto.BalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	resp := dto.ToBalanceResponse(account, time.Now().UTC())
	return &resp, nil
}

// ListBalanceHistory retrieves the paginated balance audit trail of an
// account, newest first.
func (s *accountService) ListBalanceHistory(ctx context.Context, accountNumber string, params dto.ListBalanceHistoryParams) (*dto.ListBalanceHistoryResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	history, nextToken, err := s.accountRepo.ListBalanceHistory(ctx, account.AccountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.BalanceHistoryResponse, len(history))
	for i := range history {
		rows[i] = dto.ToBalanceHistoryResponse(&history[i])
	}
	return &dto.ListBalanceHistoryResponse{History: rows, NextToken: nextToken}, nil
}
