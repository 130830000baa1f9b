package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeType selects the fee calculation strategy.
type ChargeType string

const (
	ChargeFlat       ChargeType = "flat"
	ChargePercentage ChargeType = "percentage"
	ChargeTiered     ChargeType = "tiered"
)

// Charge is a named fee definition bound to an income GL account. Flat
// charges use Amount, percentage charges use Percentage, tiered charges
// use Tiers.
type Charge struct {
	ChargeID          string          `json:"chargeID"`
	Name              string          `json:"name"`
	Type              ChargeType      `json:"chargeType"`
	Amount            decimal.Decimal `json:"amount"`
	Percentage        decimal.Decimal `json:"percentage"`
	CurrencyCode      string          `json:"currencyCode"`
	TxnType           TransactionType `json:"txnType"` // which transaction type triggers it
	Description       string          `json:"description"`
	IsActive          bool            `json:"isActive"`
	GLIncomeAccountID string          `json:"glIncomeAccountID"`
	Tiers             []ChargeTier    `json:"tiers,omitempty"`
	AuditFields
}

// ChargeTier is one non-overlapping [FromAmount, ToAmount) range of a
// tiered charge. A nil ToAmount means the tier is open-ended; exactly one
// of FixedAmount and Percentage is set.
type ChargeTier struct {
	TierID      string           `json:"tierID"`
	ChargeID    string           `json:"chargeID"`
	FromAmount  decimal.Decimal  `json:"fromAmount"`
	ToAmount    *decimal.Decimal `json:"toAmount,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
}

// AccountChargeBinding attaches a charge to a specific account within an
// effective date window. Account-specific bindings take precedence over
// globally active charges.
type AccountChargeBinding struct {
	BindingID      string     `json:"bindingID"`
	AccountID      string     `json:"accountID"`
	ChargeID       string     `json:"chargeID"`
	IsActive       bool       `json:"isActive"`
	EffectiveFrom  *time.Time `json:"effectiveFrom,omitempty"`
	EffectiveUntil *time.Time `json:"effectiveUntil,omitempty"`
}

// ActiveAt reports whether the binding applies at the given instant.
func (b *AccountChargeBinding) ActiveAt(at time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.EffectiveFrom != nil && at.Before(*b.EffectiveFrom) {
		return false
	}
	if b.EffectiveUntil != nil && !at.Before(*b.EffectiveUntil) {
		return false
	}
	return true
}

// Calculate returns the fee this charge levies on the given amount.
// Unknown types and tiered amounts with no matching tier yield zero.
func (c *Charge) Calculate(amount decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case ChargeFlat:
		return c.Amount
	case ChargePercentage:
		return amount.Mul(c.Percentage).Div(decimal.NewFromInt(100))
	case ChargeTiered:
		return c.calculateTiered(amount)
	default:
		return decimal.Zero
	}
}

func (c *Charge) calculateTiered(amount decimal.Decimal) decimal.Decimal {
	for _, tier := range c.Tiers {
		if amount.LessThan(tier.FromAmount) {
			continue
		}
		if tier.ToAmount != nil && !amount.LessThan(*tier.ToAmount) {
			continue
		}
		if tier.FixedAmount != nil {
			return *tier.FixedAmount
		}
		if tier.Percentage != nil {
			return amount.Mul(*tier.Percentage).Div(decimal.NewFromInt(100))
		}
		return decimal.Zero
	}
	return decimal.Zero
}
