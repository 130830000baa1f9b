package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement a transaction records.
type TransactionType string

const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeTransfer    TransactionType = "transfer"
	TypeCharge      TransactionType = "charge"
	TypeReversal    TransactionType = "reversal"
	TypeLien        TransactionType = "lien"
	TypeLienRelease TransactionType = "lien_release"
)

// TransactionStatus is the lifecycle state of a transaction.
// pending -> processing -> completed | failed, with awaiting_compliance as
// an alternate held state.
type TransactionStatus string

const (
	StatusPending            TransactionStatus = "pending"
	StatusProcessing         TransactionStatus = "processing"
	StatusCompleted          TransactionStatus = "completed"
	StatusFailed             TransactionStatus = "failed"
	StatusAwaitingCompliance TransactionStatus = "awaiting_compliance"
)

// Transaction is an immutable-once-terminal record of one money movement,
// carrying full before/after balance snapshots for its source account and,
// for transfers, its destination account.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`
	InternalReference string          `json:"internalReference"`
	ExternalReference string          `json:"externalReference"`
	Type              TransactionType `json:"transactionType"`

	SourceAccountID      string  `json:"sourceAccountID"`
	DestinationAccountID *string `json:"destinationAccountID,omitempty"`

	CurrencyCode string            `json:"currencyCode"`
	Amount       decimal.Decimal   `json:"amount"`
	Description  string            `json:"description"`
	Status       TransactionStatus `json:"status"`

	SourceBefore BalanceSnapshot `json:"sourceBefore"`
	SourceAfter  BalanceSnapshot `json:"sourceAfter"`

	DestinationBefore *BalanceSnapshot `json:"destinationBefore,omitempty"`
	DestinationAfter  *BalanceSnapshot `json:"destinationAfter,omitempty"`

	// OriginalTransactionID links reversals and lien releases back to the
	// transaction they act on; ReversalTransactionID is the reverse pointer
	// (at most one reversal per transaction).
	OriginalTransactionID *string `json:"originalTransactionID,omitempty"`
	ReversalTransactionID *string `json:"reversalTransactionID,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	AuditFields
}

// IsTerminal reports whether the transaction reached a final state and may
// no longer be mutated.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// IsReversible reports whether a reversal may be created for this
// transaction: it must be completed, must not itself be a reversal, and
// must not already have one.
func (t *Transaction) IsReversible() bool {
	return t.Status == StatusCompleted &&
		t.Type != TypeReversal &&
		t.ReversalTransactionID == nil
}

// IsLien reports whether this transaction placed a lien.
func (t *Transaction) IsLien() bool {
	return t.Type == TypeLien
}

// CanReleaseLien reports whether the locked funds of this lien may be
// released: completed lien with no release recorded against it.
func (t *Transaction) CanReleaseLien() bool {
	return t.IsLien() &&
		t.Status == StatusCompleted &&
		t.ReversalTransactionID == nil
}

// NewInternalReference generates a caller-visible transaction reference.
func NewInternalReference() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
