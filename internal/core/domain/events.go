package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatusEvent is the payload published on the status channel
// whenever a transaction changes state. Delivery is best effort and never
// part of the balance-mutation transaction.
type TransactionStatusEvent struct {
	TransactionID        string            `json:"id"`
	Type                 TransactionType   `json:"type"`
	Status               TransactionStatus `json:"status"`
	Amount               decimal.Decimal   `json:"amount"`
	CurrencyCode         string            `json:"currency"`
	SourceAccountID      string            `json:"source_account_id"`
	DestinationAccountID *string           `json:"destination_account_id,omitempty"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// StatusEventFromTransaction builds the status event for a transaction's
// current state.
func StatusEventFromTransaction(txn Transaction) TransactionStatusEvent {
	return TransactionStatusEvent{
		TransactionID:        txn.TransactionID,
		Type:                 txn.Type,
		Status:               txn.Status,
		Amount:               txn.Amount,
		CurrencyCode:         txn.CurrencyCode,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		UpdatedAt:            txn.LastUpdatedAt,
	}
}
