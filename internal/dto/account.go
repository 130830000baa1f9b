package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// AccountResponse defines the data returned for a wallet account.
type AccountResponse struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	AccountName      string          `json:"accountName"`
	ClientID         string          `json:"clientID"`
	ProductID        string          `json:"productID"`
	CurrencyCode     string          `json:"currencyCode"`
	Status           string          `json:"status"`
	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	LockedAmount     decimal.Decimal `json:"lockedAmount"`
	AllowOverdraft   bool            `json:"allowOverdraft"`
	OverdraftLimit   decimal.Decimal `json:"overdraftLimit"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// BalanceResponse is the lightweight balance view of an account.
type BalanceResponse struct {
	AccountNumber    string          `json:"accountNumber"`
	CurrencyCode     string          `json:"currencyCode"`
	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	LockedAmount     decimal.Decimal `json:"lockedAmount"`
	AsOf             time.Time       `json:"asOf"`
}

// BalanceHistoryResponse is one historical balance snapshot of an account.
type BalanceHistoryResponse struct {
	HistoryID        string          `json:"historyID"`
	TransactionID    string          `json:"transactionID"`
	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	LockedAmount     decimal.Decimal `json:"lockedAmount"`
	BalanceDate      time.Time       `json:"balanceDate"`
}

// ListBalanceHistoryParams defines pagination parameters for balance history.
type ListBalanceHistoryParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListBalanceHistoryResponse is a page of balance history rows.
type ListBalanceHistoryResponse struct {
	History   []BalanceHistoryResponse `json:"history"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		AccountNumber:    acc.AccountNumber,
		AccountName:      acc.AccountName,
		ClientID:         acc.ClientID,
		ProductID:        acc.ProductID,
		CurrencyCode:     acc.CurrencyCode,
		Status:           string(acc.Status),
		LedgerBalance:    acc.LedgerBalance,
		AvailableBalance: acc.AvailableBalance,
		LockedAmount:     acc.LockedAmount,
		AllowOverdraft:   acc.AllowOverdraft,
		OverdraftLimit:   acc.OverdraftLimit,
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ToBalanceResponse converts a domain.Account to its balance view.
func ToBalanceResponse(acc *domain.Account, asOf time.Time) BalanceResponse {
	return BalanceResponse{
		AccountNumber:    acc.AccountNumber,
		CurrencyCode:     acc.CurrencyCode,
		LedgerBalance:    acc.LedgerBalance,
		AvailableBalance: acc.AvailableBalance,
		LockedAmount:     acc.LockedAmount,
		AsOf:             asOf,
	}
}

// ToBalanceHistoryResponse converts a domain history row to its DTO.
func ToBalanceHistoryResponse(h *domain.AccountBalanceHistory) BalanceHistoryResponse {
	return BalanceHistoryResponse{
		HistoryID:        h.HistoryID,
		TransactionID:    h.TransactionID,
		LedgerBalance:    h.Balances.Ledger,
		AvailableBalance: h.Balances.Available,
		LockedAmount:     h.Balances.Locked,
		BalanceDate:      h.BalanceDate,
	}
}
