package domain_test

import (
	"testing"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestCharge_Calculate_Flat(t *testing.T) {
	charge := domain.Charge{Type: domain.ChargeFlat, Amount: decimal.NewFromFloat(25.5)}
	got := charge.Calculate(decimal.NewFromInt(10000))
	assert.True(t, decimal.NewFromFloat(25.5).Equal(got))
}

func TestCharge_Calculate_Percentage(t *testing.T) {
	charge := domain.Charge{Type: domain.ChargePercentage, Percentage: decimal.NewFromFloat(1.5)}
	got := charge.Calculate(decimal.NewFromInt(200))
	assert.True(t, decimal.NewFromInt(3).Equal(got), "1.5%% of 200 should be 3, got %s", got)
}

func TestCharge_Calculate_Tiered(t *testing.T) {
	charge := domain.Charge{
		Type: domain.ChargeTiered,
		Tiers: []domain.ChargeTier{
			{FromAmount: decimal.Zero, ToAmount: decPtr(decimal.NewFromInt(1000)), FixedAmount: decPtr(decimal.NewFromInt(10))},
			{FromAmount: decimal.NewFromInt(1000), ToAmount: decPtr(decimal.NewFromInt(5000)), FixedAmount: decPtr(decimal.NewFromInt(50))},
			{FromAmount: decimal.NewFromInt(5000), Percentage: decPtr(decimal.NewFromInt(2))},
		},
	}

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{"first tier", decimal.NewFromInt(500), decimal.NewFromInt(10)},
		{"lower bound is inclusive", decimal.NewFromInt(1000), decimal.NewFromInt(50)},
		{"upper bound is exclusive", decimal.NewFromFloat(999.9999), decimal.NewFromInt(10)},
		{"open-ended percentage tier", decimal.NewFromInt(10000), decimal.NewFromInt(200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := charge.Calculate(tt.amount)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCharge_Calculate_TieredNoMatch(t *testing.T) {
	charge := domain.Charge{
		Type: domain.ChargeTiered,
		Tiers: []domain.ChargeTier{
			{FromAmount: decimal.NewFromInt(100), ToAmount: decPtr(decimal.NewFromInt(200)), FixedAmount: decPtr(decimal.NewFromInt(5))},
		},
	}
	assert.True(t, charge.Calculate(decimal.NewFromInt(50)).IsZero())
	assert.True(t, charge.Calculate(decimal.NewFromInt(200)).IsZero())
}
