package mapping

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Metadata marshals to JSON; a nil map becomes a NULL column.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	m := models.Transaction{
		TransactionID:         d.TransactionID,
		InternalReference:     d.InternalReference,
		ExternalReference:     d.ExternalReference,
		TransactionType:       string(d.Type),
		SourceAccountID:       d.SourceAccountID,
		DestinationAccountID:  d.DestinationAccountID,
		CurrencyCode:          d.CurrencyCode,
		Amount:                d.Amount,
		Description:           d.Description,
		Status:                string(d.Status),
		SourceLedgerBefore:    d.SourceBefore.Ledger,
		SourceAvailableBefore: d.SourceBefore.Available,
		SourceLockedBefore:    d.SourceBefore.Locked,
		SourceLedgerAfter:     d.SourceAfter.Ledger,
		SourceAvailableAfter:  d.SourceAfter.Available,
		SourceLockedAfter:     d.SourceAfter.Locked,
		OriginalTransactionID: d.OriginalTransactionID,
		ReversalTransactionID: d.ReversalTransactionID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}

	if d.DestinationBefore != nil {
		m.DestLedgerBefore = decimalPtr(d.DestinationBefore.Ledger)
		m.DestAvailableBefore = decimalPtr(d.DestinationBefore.Available)
		m.DestLockedBefore = decimalPtr(d.DestinationBefore.Locked)
	}
	if d.DestinationAfter != nil {
		m.DestLedgerAfter = decimalPtr(d.DestinationAfter.Ledger)
		m.DestAvailableAfter = decimalPtr(d.DestinationAfter.Available)
		m.DestLockedAfter = decimalPtr(d.DestinationAfter.Locked)
	}

	if d.Metadata != nil {
		raw, err := json.Marshal(d.Metadata)
		if err != nil {
			return models.Transaction{}, err
		}
		m.Metadata = raw
	}
	return m, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	d := domain.Transaction{
		TransactionID:        m.TransactionID,
		InternalReference:    m.InternalReference,
		ExternalReference:    m.ExternalReference,
		Type:                 domain.TransactionType(m.TransactionType),
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		CurrencyCode:         m.CurrencyCode,
		Amount:               m.Amount,
		Description:          m.Description,
		Status:               domain.TransactionStatus(m.Status),
		SourceBefore: domain.BalanceSnapshot{
			Ledger:    m.SourceLedgerBefore,
			Available: m.SourceAvailableBefore,
			Locked:    m.SourceLockedBefore,
		},
		SourceAfter: domain.BalanceSnapshot{
			Ledger:    m.SourceLedgerAfter,
			Available: m.SourceAvailableAfter,
			Locked:    m.SourceLockedAfter,
		},
		OriginalTransactionID: m.OriginalTransactionID,
		ReversalTransactionID: m.ReversalTransactionID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}

	if m.DestLedgerBefore != nil && m.DestAvailableBefore != nil && m.DestLockedBefore != nil {
		d.DestinationBefore = &domain.BalanceSnapshot{
			Ledger:    *m.DestLedgerBefore,
			Available: *m.DestAvailableBefore,
			Locked:    *m.DestLockedBefore,
		}
	}
	if m.DestLedgerAfter != nil && m.DestAvailableAfter != nil && m.DestLockedAfter != nil {
		d.DestinationAfter = &domain.BalanceSnapshot{
			Ledger:    *m.DestLedgerAfter,
			Available: *m.DestAvailableAfter,
			Locked:    *m.DestLockedAfter,
		}
	}

	if len(m.Metadata) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(m.Metadata, &meta); err != nil {
			return domain.Transaction{}, err
		}
		d.Metadata = meta
	}
	return d, nil
}

// ToDomainBalanceHistory converts a model AccountBalanceHistory row to its
// domain form.
func ToDomainBalanceHistory(m models.AccountBalanceHistory) domain.AccountBalanceHistory {
	return domain.AccountBalanceHistory{
		HistoryID:     m.HistoryID,
		AccountID:     m.AccountID,
		TransactionID: m.TransactionID,
		Balances: domain.BalanceSnapshot{
			Ledger:    m.LedgerBalance,
			Available: m.AvailableBalance,
			Locked:    m.LockedAmount,
		},
		BalanceDate: m.BalanceDate,
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
