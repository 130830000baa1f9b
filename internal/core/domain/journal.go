package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	EntryDraft  JournalStatus = "draft"
	EntryPosted JournalStatus = "posted"
	EntryVoided JournalStatus = "voided"
)

// JournalEntry is one balanced double-entry posting. Every completed
// transaction produces exactly one; its items' debits and credits must sum
// equally before it may be posted.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	EntryNumber   string          `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	ReferenceType TransactionType `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"` // transaction id
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description"`
	Status        JournalStatus   `json:"status"`
	PostedBy      string          `json:"postedBy,omitempty"`
	PostedAt      *time.Time      `json:"postedAt,omitempty"`
	VoidReason    string          `json:"voidReason,omitempty"`
	VoidedBy      string          `json:"voidedBy,omitempty"`
	VoidedAt      *time.Time      `json:"voidedAt,omitempty"`

	Items []JournalEntryItem `json:"items,omitempty"`

	AuditFields
}

// JournalEntryItem is a single debit or credit line against a GL account.
type JournalEntryItem struct {
	ItemID       string          `json:"itemID"`
	EntryID      string          `json:"entryID"`
	GLAccountID  string          `json:"glAccountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// TotalDebits sums the debit side of the entry.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range e.Items {
		sum = sum.Add(item.DebitAmount)
	}
	return sum
}

// TotalCredits sums the credit side of the entry.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range e.Items {
		sum = sum.Add(item.CreditAmount)
	}
	return sum
}

// IsBalanced reports whether the entry has at least two items and its
// debits equal its credits exactly.
func (e *JournalEntry) IsBalanced() bool {
	if len(e.Items) < 2 {
		return false
	}
	return e.TotalDebits().Equal(e.TotalCredits())
}

// CanBePosted reports whether the entry is a balanced draft.
func (e *JournalEntry) CanBePosted() bool {
	return e.Status == EntryDraft && e.IsBalanced()
}
