package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// JournalEntryItemResponse is one debit or credit line of a journal entry.
type JournalEntryItemResponse struct {
	ItemID       string          `json:"itemID"`
	GLAccountID  string          `json:"glAccountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a posted journal entry.
type JournalEntryResponse struct {
	EntryID       string                     `json:"entryID"`
	EntryNumber   string                     `json:"entryNumber"`
	EntryDate     time.Time                  `json:"entryDate"`
	ReferenceType string                     `json:"referenceType"`
	ReferenceID   string                     `json:"referenceID"`
	CurrencyCode  string                     `json:"currencyCode"`
	Description   string                     `json:"description"`
	Status        string                     `json:"status"`
	PostedBy      string                     `json:"postedBy,omitempty"`
	PostedAt      *time.Time                 `json:"postedAt,omitempty"`
	VoidReason    string                     `json:"voidReason,omitempty"`
	VoidedBy      string                     `json:"voidedBy,omitempty"`
	VoidedAt      *time.Time                 `json:"voidedAt,omitempty"`
	Items         []JournalEntryItemResponse `json:"items"`
}

// VoidEntryRequest carries the mandatory reason for voiding a posted
// journal entry.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	items := make([]JournalEntryItemResponse, len(e.Items))
	for i, item := range e.Items {
		items[i] = JournalEntryItemResponse{
			ItemID:       item.ItemID,
			GLAccountID:  item.GLAccountID,
			DebitAmount:  item.DebitAmount,
			CreditAmount: item.CreditAmount,
			Description:  item.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		EntryNumber:   e.EntryNumber,
		EntryDate:     e.EntryDate,
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		CurrencyCode:  e.CurrencyCode,
		Description:   e.Description,
		Status:        string(e.Status),
		PostedBy:      e.PostedBy,
		PostedAt:      e.PostedAt,
		VoidReason:    e.VoidReason,
		VoidedBy:      e.VoidedBy,
		VoidedAt:      e.VoidedAt,
		Items:         items,
	}
}
