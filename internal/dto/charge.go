package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// ChargePreviewRequest asks what fees a prospective transaction would incur.
type ChargePreviewRequest struct {
	AccountNumber   string          `json:"accountNumber" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=deposit withdrawal transfer"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// ChargePreviewLine is one fee a transaction would incur.
type ChargePreviewLine struct {
	ChargeID   string          `json:"chargeID"`
	ChargeName string          `json:"chargeName"`
	ChargeType string          `json:"chargeType"`
	Amount     decimal.Decimal `json:"amount"`
}

// ChargePreviewResponse is the full fee breakdown for a prospective
// transaction.
type ChargePreviewResponse struct {
	Charges     []ChargePreviewLine `json:"charges"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
}

// DailyAggregateResponse is the per-day transaction rollup for an account.
type DailyAggregateResponse struct {
	AccountID           string          `json:"accountID"`
	Date                time.Time       `json:"date"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CollectionsAmount   decimal.Decimal `json:"collectionsAmount"`
	DisbursementsAmount decimal.Decimal `json:"disbursementsAmount"`
}

// ToDailyAggregateResponse converts a domain.TransactionAggregate to its DTO.
func ToDailyAggregateResponse(a *domain.TransactionAggregate) DailyAggregateResponse {
	return DailyAggregateResponse{
		AccountID:           a.AccountID,
		Date:                a.Date,
		TotalAmount:         a.AggregatedDailyAmount,
		CollectionsAmount:   a.CollectionsAmount,
		DisbursementsAmount: a.DisbursementsAmount,
	}
}
