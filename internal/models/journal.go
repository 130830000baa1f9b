package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID       string     `db:"entry_id"`
	EntryNumber   string     `db:"entry_number"`
	EntryDate     time.Time  `db:"entry_date"`
	ReferenceType string     `db:"reference_type"`
	ReferenceID   string     `db:"reference_id"`
	CurrencyCode  string     `db:"currency_code"`
	Description   string     `db:"description"`
	Status        string     `db:"status"`
	PostedBy      *string    `db:"posted_by_user_id"`
	PostedAt      *time.Time `db:"posted_at"`
	VoidReason    *string    `db:"void_reason"`
	VoidedBy      *string    `db:"voided_by_user_id"`
	VoidedAt      *time.Time `db:"voided_at"`
	AuditFields
}

// JournalEntryItem mirrors the journal_entry_items table.
type JournalEntryItem struct {
	ItemID       string          `db:"item_id"`
	EntryID      string          `db:"entry_id"`
	GLAccountID  string          `db:"gl_account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
}

// GLAccount mirrors the gl_accounts table (self-referencing hierarchy).
type GLAccount struct {
	GLAccountID     string          `db:"gl_account_id"`
	AccountCode     string          `db:"account_code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	ParentAccountID *string         `db:"parent_account_id"`
	CurrencyCode    string          `db:"currency_code"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
