package mapping

import (
	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:              d.AccountID,
		AccountNumber:          d.AccountNumber,
		ClientID:               d.ClientID,
		ProductID:              d.ProductID,
		AccountName:            d.AccountName,
		CurrencyCode:           d.CurrencyCode,
		Status:                 string(d.Status),
		LedgerBalance:          d.LedgerBalance,
		AvailableBalance:       d.AvailableBalance,
		LockedAmount:           d.LockedAmount,
		AllowOverdraft:         d.AllowOverdraft,
		OverdraftLimit:         d.OverdraftLimit,
		OverdraftRate:          d.OverdraftRate,
		SingleTransactionLimit: d.SingleTransactionLimit,
		Version:                d.Version,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:              m.AccountID,
		AccountNumber:          m.AccountNumber,
		ClientID:               m.ClientID,
		ProductID:              m.ProductID,
		AccountName:            m.AccountName,
		CurrencyCode:           m.CurrencyCode,
		Status:                 domain.AccountStatus(m.Status),
		LedgerBalance:          m.LedgerBalance,
		AvailableBalance:       m.AvailableBalance,
		LockedAmount:           m.LockedAmount,
		AllowOverdraft:         m.AllowOverdraft,
		OverdraftLimit:         m.OverdraftLimit,
		OverdraftRate:          m.OverdraftRate,
		SingleTransactionLimit: m.SingleTransactionLimit,
		Version:                m.Version,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:               m.ProductID,
		Name:                    m.Name,
		CurrencyCode:            m.CurrencyCode,
		MinimumWithdrawalAmount: m.MinimumWithdrawalAmount,
		DailyTransactionLimit:   m.DailyTransactionLimit,
		IsActive:                m.IsActive,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}
