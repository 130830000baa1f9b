package domain_test

import (
	"strings"
	"testing"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTransaction_IsReversible(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name:        "completed deposit is reversible",
			transaction: domain.Transaction{Type: domain.TypeDeposit, Status: domain.StatusCompleted},
			want:        true,
		},
		{
			name:        "pending deposit is not reversible",
			transaction: domain.Transaction{Type: domain.TypeDeposit, Status: domain.StatusPending},
			want:        false,
		},
		{
			name:        "failed withdrawal is not reversible",
			transaction: domain.Transaction{Type: domain.TypeWithdrawal, Status: domain.StatusFailed},
			want:        false,
		},
		{
			name:        "a reversal is never itself reversible",
			transaction: domain.Transaction{Type: domain.TypeReversal, Status: domain.StatusCompleted},
			want:        false,
		},
		{
			name: "already reversed transaction is not reversible",
			transaction: domain.Transaction{
				Type:                  domain.TypeWithdrawal,
				Status:                domain.StatusCompleted,
				ReversalTransactionID: strPtr("rev-1"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.IsReversible())
		})
	}
}

func TestTransaction_CanReleaseLien(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name:        "completed lien can be released",
			transaction: domain.Transaction{Type: domain.TypeLien, Status: domain.StatusCompleted},
			want:        true,
		},
		{
			name:        "non-lien cannot be released",
			transaction: domain.Transaction{Type: domain.TypeDeposit, Status: domain.StatusCompleted},
			want:        false,
		},
		{
			name:        "pending lien cannot be released",
			transaction: domain.Transaction{Type: domain.TypeLien, Status: domain.StatusPending},
			want:        false,
		},
		{
			name: "already released lien cannot be released again",
			transaction: domain.Transaction{
				Type:                  domain.TypeLien,
				Status:                domain.StatusCompleted,
				ReversalTransactionID: strPtr("rel-1"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.CanReleaseLien())
		})
	}
}

func TestNewInternalReference(t *testing.T) {
	ref := domain.NewInternalReference()
	assert.True(t, strings.HasPrefix(ref, "TXN-"))
	assert.Len(t, ref, len("TXN-")+16)
	assert.Equal(t, strings.ToUpper(ref), ref)
	assert.NotEqual(t, ref, domain.NewInternalReference())
}
