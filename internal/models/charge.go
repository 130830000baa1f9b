package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge mirrors the charges table.
type Charge struct {
	ChargeID          string          `db:"charge_id"`
	Name              string          `db:"name"`
	ChargeType        string          `db:"charge_type"`
	Amount            decimal.Decimal `db:"amount"`
	Percentage        decimal.Decimal `db:"percentage"`
	CurrencyCode      string          `db:"currency_code"`
	TxnType           string          `db:"txn_type"`
	Description       string          `db:"description"`
	IsActive          bool            `db:"is_active"`
	GLIncomeAccountID string          `db:"gl_income_account_id"`
	AuditFields
}

// ChargeTier mirrors the charge_tiers table.
type ChargeTier struct {
	TierID      string           `db:"tier_id"`
	ChargeID    string           `db:"charge_id"`
	FromAmount  decimal.Decimal  `db:"from_amount"`
	ToAmount    *decimal.Decimal `db:"to_amount"`
	FixedAmount *decimal.Decimal `db:"fixed_amount"`
	Percentage  *decimal.Decimal `db:"percentage"`
}

// AccountCharge mirrors the account_charges binding table.
type AccountCharge struct {
	BindingID      string     `db:"binding_id"`
	AccountID      string     `db:"account_id"`
	ChargeID       string     `db:"charge_id"`
	IsActive       bool       `db:"is_active"`
	EffectiveFrom  *time.Time `db:"effective_from"`
	EffectiveUntil *time.Time `db:"effective_until"`
}

// TransactionAggregate mirrors the transaction_aggregates table
// (unique per account_id + date).
type TransactionAggregate struct {
	AggregateID           string          `db:"aggregate_id"`
	AccountID             string          `db:"account_id"`
	Date                  time.Time       `db:"date"`
	AggregatedDailyAmount decimal.Decimal `db:"aggregated_daily_amount"`
	CollectionsAmount     decimal.Decimal `db:"collections_amount"`
	DisbursementsAmount   decimal.Decimal `db:"disbursements_amount"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

// WebhookEvent mirrors the webhook_events table (unique webhook_id).
type WebhookEvent struct {
	EventID        string     `db:"event_id"`
	WebhookID      string     `db:"webhook_id"`
	URL            string     `db:"url"`
	Payload        []byte     `db:"payload"`
	Status         string     `db:"status"`
	Attempt        int        `db:"attempt"`
	ResponseStatus *int       `db:"response_status"`
	ResponseBody   *string    `db:"response_body"`
	ErrorMessage   *string    `db:"error_message"`
	ScheduledAt    *time.Time `db:"scheduled_at"`
	DeliveredAt    *time.Time `db:"delivered_at"`
	FailedAt       *time.Time `db:"failed_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
