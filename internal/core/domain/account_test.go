package domain_test

import (
	"testing"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_BalancesConsistent(t *testing.T) {
	account := domain.Account{
		LedgerBalance:    decimal.NewFromFloat(150.25),
		AvailableBalance: decimal.NewFromFloat(100.25),
		LockedAmount:     decimal.NewFromInt(50),
	}
	assert.True(t, account.BalancesConsistent())

	account.LockedAmount = decimal.NewFromInt(60)
	assert.False(t, account.BalancesConsistent())
}

func TestAccount_AvailableOverdraft(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		want    decimal.Decimal
	}{
		{
			name:    "no facility yields zero",
			account: domain.Account{LedgerBalance: decimal.NewFromInt(100)},
			want:    decimal.Zero,
		},
		{
			name: "positive balance leaves the full limit",
			account: domain.Account{
				AllowOverdraft: true,
				OverdraftLimit: decimal.NewFromInt(500),
				LedgerBalance:  decimal.NewFromInt(100),
			},
			want: decimal.NewFromInt(500),
		},
		{
			name: "overdrawn balance shrinks the headroom",
			account: domain.Account{
				AllowOverdraft: true,
				OverdraftLimit: decimal.NewFromInt(500),
				LedgerBalance:  decimal.NewFromInt(-200),
			},
			want: decimal.NewFromInt(300),
		},
		{
			name: "fully exhausted facility floors at zero",
			account: domain.Account{
				AllowOverdraft: true,
				OverdraftLimit: decimal.NewFromInt(500),
				LedgerBalance:  decimal.NewFromInt(-700),
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.account.AvailableOverdraft()
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	entry := domain.JournalEntry{
		Items: []domain.JournalEntryItem{
			{DebitAmount: decimal.NewFromFloat(100.0001), CreditAmount: decimal.Zero},
			{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromFloat(100.0001)},
		},
	}
	assert.True(t, entry.IsBalanced())

	entry.Items[1].CreditAmount = decimal.NewFromFloat(100.0002)
	assert.False(t, entry.IsBalanced())

	single := domain.JournalEntry{Items: []domain.JournalEntryItem{{DebitAmount: decimal.Zero, CreditAmount: decimal.Zero}}}
	assert.False(t, single.IsBalanced(), "an entry needs at least two items")
}
