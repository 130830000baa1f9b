package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// DepositRequest defines the data needed to credit an account.
type DepositRequest struct {
	AccountNumber     string          `json:"accountNumber" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,len=3"`
	ExternalReference string          `json:"externalReference" binding:"required"`
	Description       string          `json:"description"`
	WebhookURL        string          `json:"webhookUrl" binding:"omitempty,url"`
	Metadata          map[string]any  `json:"metadata"`
}

// WithdrawalRequest defines the data needed to debit an account.
type WithdrawalRequest struct {
	AccountNumber     string          `json:"accountNumber" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,len=3"`
	ExternalReference string          `json:"externalReference" binding:"required"`
	Description       string          `json:"description"`
	WebhookURL        string          `json:"webhookUrl" binding:"omitempty,url"`
	Metadata          map[string]any  `json:"metadata"`
}

// TransferRequest defines the data needed to move funds between two accounts.
type TransferRequest struct {
	SourceAccountNumber      string          `json:"sourceAccountNumber" binding:"required"`
	DestinationAccountNumber string          `json:"destinationAccountNumber" binding:"required"`
	Amount                   decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode             string          `json:"currencyCode" binding:"required,len=3"`
	ExternalReference        string          `json:"externalReference" binding:"required"`
	Description              string          `json:"description"`
	WebhookURL               string          `json:"webhookUrl" binding:"omitempty,url"`
	Metadata                 map[string]any  `json:"metadata"`
}

// ReversalRequest defines the data needed to reverse a completed transaction.
type ReversalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BalanceSnapshotResponse mirrors a balance triplet captured on a transaction.
type BalanceSnapshotResponse struct {
	Ledger    decimal.Decimal `json:"ledger"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string          `json:"transactionID"`
	InternalReference    string          `json:"internalReference"`
	ExternalReference    string          `json:"externalReference"`
	Type                 string          `json:"type"`
	Status               string          `json:"status"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID *string         `json:"destinationAccountID,omitempty"`
	CurrencyCode         string          `json:"currencyCode"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description"`

	SourceBefore      BalanceSnapshotResponse  `json:"sourceBefore"`
	SourceAfter       BalanceSnapshotResponse  `json:"sourceAfter"`
	DestinationBefore *BalanceSnapshotResponse `json:"destinationBefore,omitempty"`
	DestinationAfter  *BalanceSnapshotResponse `json:"destinationAfter,omitempty"`

	OriginalTransactionID *string `json:"originalTransactionID,omitempty"`
	ReversalTransactionID *string `json:"reversalTransactionID,omitempty"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy string         `json:"createdBy"`
}

// ListTransactionsParams defines pagination parameters for account statements.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions with the token for the
// next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func toSnapshotResponse(s domain.BalanceSnapshot) BalanceSnapshotResponse {
	return BalanceSnapshotResponse{
		Ledger:    s.Ledger,
		Available: s.Available,
		Locked:    s.Locked,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:         txn.TransactionID,
		InternalReference:     txn.InternalReference,
		ExternalReference:     txn.ExternalReference,
		Type:                  string(txn.Type),
		Status:                string(txn.Status),
		SourceAccountID:       txn.SourceAccountID,
		DestinationAccountID:  txn.DestinationAccountID,
		CurrencyCode:          txn.CurrencyCode,
		Amount:                txn.Amount,
		Description:           txn.Description,
		SourceBefore:          toSnapshotResponse(txn.SourceBefore),
		SourceAfter:           toSnapshotResponse(txn.SourceAfter),
		OriginalTransactionID: txn.OriginalTransactionID,
		ReversalTransactionID: txn.ReversalTransactionID,
		Metadata:              txn.Metadata,
		CreatedAt:             txn.CreatedAt,
		CreatedBy:             txn.CreatedBy,
	}
	if txn.DestinationBefore != nil {
		before := toSnapshotResponse(*txn.DestinationBefore)
		resp.DestinationBefore = &before
	}
	if txn.DestinationAfter != nil {
		after := toSnapshotResponse(*txn.DestinationAfter)
		resp.DestinationAfter = &after
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
