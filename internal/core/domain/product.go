package domain

import "github.com/shopspring/decimal"

// Product carries the limits an account inherits from the product it was
// provisioned under. Product administration lives outside this service; the
// engine only reads these figures during withdrawal validation.
type Product struct {
	ProductID               string          `json:"productID"`
	Name                    string          `json:"name"`
	CurrencyCode            string          `json:"currencyCode"`
	MinimumWithdrawalAmount decimal.Decimal `json:"minimumWithdrawalAmount"` // zero means unset
	DailyTransactionLimit   decimal.Decimal `json:"dailyTransactionLimit"`   // zero means unset
	IsActive                bool            `json:"isActive"`
	AuditFields
}
