package mapping

import (
	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/models"
)

// ToDomainCharge converts a model Charge and its tier rows to a domain
// Charge.
func ToDomainCharge(m models.Charge, tiers []models.ChargeTier) domain.Charge {
	d := domain.Charge{
		ChargeID:          m.ChargeID,
		Name:              m.Name,
		Type:              domain.ChargeType(m.ChargeType),
		Amount:            m.Amount,
		Percentage:        m.Percentage,
		CurrencyCode:      m.CurrencyCode,
		TxnType:           domain.TransactionType(m.TxnType),
		Description:       m.Description,
		IsActive:          m.IsActive,
		GLIncomeAccountID: m.GLIncomeAccountID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	for _, tier := range tiers {
		d.Tiers = append(d.Tiers, domain.ChargeTier{
			TierID:      tier.TierID,
			ChargeID:    tier.ChargeID,
			FromAmount:  tier.FromAmount,
			ToAmount:    tier.ToAmount,
			FixedAmount: tier.FixedAmount,
			Percentage:  tier.Percentage,
		})
	}
	return d
}

// ToDomainAccountChargeBinding converts a model AccountCharge row to its
// domain form.
func ToDomainAccountChargeBinding(m models.AccountCharge) domain.AccountChargeBinding {
	return domain.AccountChargeBinding{
		BindingID:      m.BindingID,
		AccountID:      m.AccountID,
		ChargeID:       m.ChargeID,
		IsActive:       m.IsActive,
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveUntil: m.EffectiveUntil,
	}
}

// ToDomainAggregate converts a model TransactionAggregate to its domain form
func ToDomainAggregate(m models.TransactionAggregate) domain.TransactionAggregate {
	return domain.TransactionAggregate{
		AggregateID:           m.AggregateID,
		AccountID:             m.AccountID,
		Date:                  m.Date,
		AggregatedDailyAmount: m.AggregatedDailyAmount,
		CollectionsAmount:     m.CollectionsAmount,
		DisbursementsAmount:   m.DisbursementsAmount,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
