package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the audit columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Account mirrors the accounts table.
type Account struct {
	AccountID     string `db:"account_id"`
	AccountNumber string `db:"account_number"`
	ClientID      string `db:"client_id"`
	ProductID     string `db:"product_id"`
	AccountName   string `db:"account_name"`
	CurrencyCode  string `db:"currency_code"`
	Status        string `db:"status"`

	LedgerBalance    decimal.Decimal `db:"ledger_balance"`
	AvailableBalance decimal.Decimal `db:"available_balance"`
	LockedAmount     decimal.Decimal `db:"locked_amount"`

	AllowOverdraft         bool            `db:"allow_overdraft"`
	OverdraftLimit         decimal.Decimal `db:"overdraft_limit"`
	OverdraftRate          decimal.Decimal `db:"overdraft_interest_rate"`
	SingleTransactionLimit decimal.Decimal `db:"single_transaction_limit"`

	Version int64 `db:"version"`

	AuditFields
}

// Product mirrors the products table; read-only in this service.
type Product struct {
	ProductID               string          `db:"product_id"`
	Name                    string          `db:"name"`
	CurrencyCode            string          `db:"currency_code"`
	MinimumWithdrawalAmount decimal.Decimal `db:"minimum_withdrawal_amount"`
	DailyTransactionLimit   decimal.Decimal `db:"daily_transaction_limit"`
	IsActive                bool            `db:"is_active"`
	AuditFields
}

// AccountBalanceHistory mirrors the account_balance_history table.
type AccountBalanceHistory struct {
	HistoryID        string          `db:"history_id"`
	AccountID        string          `db:"account_id"`
	TransactionID    string          `db:"transaction_id"`
	LedgerBalance    decimal.Decimal `db:"ledger_balance"`
	AvailableBalance decimal.Decimal `db:"available_balance"`
	LockedAmount     decimal.Decimal `db:"locked_amount"`
	BalanceDate      time.Time       `db:"balance_date"`
}
