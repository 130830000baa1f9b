package dto

import (
	"github.com/shopspring/decimal"
)

// PlaceLienRequest defines the data needed to lock funds on an account.
type PlaceLienRequest struct {
	AccountNumber     string          `json:"accountNumber" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,len=3"`
	ExternalReference string          `json:"externalReference" binding:"required"`
	Description       string          `json:"description"`
	WebhookURL        string          `json:"webhookUrl" binding:"omitempty,url"`
	Metadata          map[string]any  `json:"metadata"`
}

// ReleaseLienRequest defines the data needed to release locked funds.
// LienTransactionID identifies the lien to release.
type ReleaseLienRequest struct {
	LienTransactionID string `json:"lienTransactionID" binding:"required"`
	Description       string `json:"description"`
	WebhookURL        string `json:"webhookUrl" binding:"omitempty,url"`
}

// JobAcceptedResponse acknowledges a queued operation. The outcome is
// delivered to the caller's webhook, keyed by JobID.
type JobAcceptedResponse struct {
	JobID  string `json:"jobID"`
	Status string `json:"status"`
}

// NewJobAcceptedResponse builds the acknowledgement for a freshly queued
// job.
func NewJobAcceptedResponse(jobID string) JobAcceptedResponse {
	return JobAcceptedResponse{JobID: jobID, Status: "accepted"}
}

// ReleaseAndWithdrawRequest releases a lien and immediately withdraws the
// released amount in one atomic operation.
type ReleaseAndWithdrawRequest struct {
	LienTransactionID string `json:"lienTransactionID" binding:"required"`
	ExternalReference string `json:"externalReference" binding:"required"`
	Description       string `json:"description"`
	WebhookURL        string `json:"webhookUrl" binding:"omitempty,url"`
}
