package models

import (
	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table, including the before/after
// snapshot columns for the source and (for transfers) destination account.
type Transaction struct {
	TransactionID     string `db:"transaction_id"`
	InternalReference string `db:"internal_reference"`
	ExternalReference string `db:"external_reference"`
	TransactionType   string `db:"transaction_type"`

	SourceAccountID      string  `db:"source_account_id"`
	DestinationAccountID *string `db:"destination_account_id"`

	CurrencyCode string          `db:"currency_code"`
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"`
	Status       string          `db:"status"`

	SourceLedgerBefore    decimal.Decimal `db:"source_ledger_balance_before"`
	SourceAvailableBefore decimal.Decimal `db:"source_available_balance_before"`
	SourceLockedBefore    decimal.Decimal `db:"source_locked_balance_before"`
	SourceLedgerAfter     decimal.Decimal `db:"source_ledger_balance_after"`
	SourceAvailableAfter  decimal.Decimal `db:"source_available_balance_after"`
	SourceLockedAfter     decimal.Decimal `db:"source_locked_balance_after"`

	DestLedgerBefore    *decimal.Decimal `db:"destination_ledger_balance_before"`
	DestAvailableBefore *decimal.Decimal `db:"destination_available_balance_before"`
	DestLockedBefore    *decimal.Decimal `db:"destination_locked_balance_before"`
	DestLedgerAfter     *decimal.Decimal `db:"destination_ledger_balance_after"`
	DestAvailableAfter  *decimal.Decimal `db:"destination_available_balance_after"`
	DestLockedAfter     *decimal.Decimal `db:"destination_locked_balance_after"`

	OriginalTransactionID *string `db:"original_transaction_id"`
	ReversalTransactionID *string `db:"reversal_transaction_id"`

	Metadata []byte `db:"metadata"`

	AuditFields
}
