package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionAggregate is the per-account, per-day rollup used for daily
// limit enforcement. Collections are deposits, disbursements are
// withdrawals and charges; AggregatedDailyAmount is the legacy combined
// total kept for backward compatibility. Liens and lien releases are never
// aggregated.
type TransactionAggregate struct {
	AggregateID           string          `json:"aggregateID"`
	AccountID             string          `json:"accountID"`
	Date                  time.Time       `json:"date"`
	AggregatedDailyAmount decimal.Decimal `json:"aggregatedDailyAmount"`
	CollectionsAmount     decimal.Decimal `json:"collectionsAmount"`
	DisbursementsAmount   decimal.Decimal `json:"disbursementsAmount"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// CountsTowardAggregates reports whether the transaction type participates
// in daily aggregation at all.
func CountsTowardAggregates(t TransactionType) bool {
	return t != TypeLien && t != TypeLienRelease
}

// IsCollection reports whether the type increments the collections metric.
func IsCollection(t TransactionType) bool {
	return t == TypeDeposit
}

// IsDisbursement reports whether the type increments the disbursements
// metric.
func IsDisbursement(t TransactionType) bool {
	return t == TypeWithdrawal || t == TypeCharge
}
