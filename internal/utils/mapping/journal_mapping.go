package mapping

import (
	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model
// JournalEntry. Items are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:       d.EntryID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     d.EntryDate,
		ReferenceType: string(d.ReferenceType),
		ReferenceID:   d.ReferenceID,
		CurrencyCode:  d.CurrencyCode,
		Description:   d.Description,
		Status:        string(d.Status),
		PostedAt:      d.PostedAt,
		VoidedAt:      d.VoidedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.PostedBy != "" {
		postedBy := d.PostedBy
		m.PostedBy = &postedBy
	}
	if d.VoidReason != "" {
		voidReason := d.VoidReason
		m.VoidReason = &voidReason
	}
	if d.VoidedBy != "" {
		voidedBy := d.VoidedBy
		m.VoidedBy = &voidedBy
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:       m.EntryID,
		EntryNumber:   m.EntryNumber,
		EntryDate:     m.EntryDate,
		ReferenceType: domain.TransactionType(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		CurrencyCode:  m.CurrencyCode,
		Description:   m.Description,
		Status:        domain.JournalStatus(m.Status),
		PostedAt:      m.PostedAt,
		VoidedAt:      m.VoidedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.PostedBy != nil {
		d.PostedBy = *m.PostedBy
	}
	if m.VoidReason != nil {
		d.VoidReason = *m.VoidReason
	}
	if m.VoidedBy != nil {
		d.VoidedBy = *m.VoidedBy
	}
	return d
}

// ToModelJournalEntryItem converts a domain item to a model item
func ToModelJournalEntryItem(d domain.JournalEntryItem) models.JournalEntryItem {
	return models.JournalEntryItem{
		ItemID:       d.ItemID,
		EntryID:      d.EntryID,
		GLAccountID:  d.GLAccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
	}
}

// ToDomainJournalEntryItem converts a model item to a domain item
func ToDomainJournalEntryItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		ItemID:       m.ItemID,
		EntryID:      m.EntryID,
		GLAccountID:  m.GLAccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		GLAccountID:     m.GLAccountID,
		AccountCode:     m.AccountCode,
		Name:            m.Name,
		Type:            domain.GLAccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		CurrencyCode:    m.CurrencyCode,
		CurrentBalance:  m.CurrentBalance,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
