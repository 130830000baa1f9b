package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientFundsError reports a failed funds check with the figures the
// caller needs to explain the rejection: how much was required (amount plus
// any fees the operation would levy), what was available, and how much
// overdraft headroom the account carried.
type InsufficientFundsError struct {
	AccountNumber    string
	RequiredAmount   decimal.Decimal
	Charges          decimal.Decimal
	AvailableBalance decimal.Decimal
	OverdraftLimit   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	msg := fmt.Sprintf("insufficient funds: required %s, available %s",
		e.RequiredAmount.StringFixed(2), e.AvailableBalance.StringFixed(2))
	if e.Charges.IsPositive() {
		msg += fmt.Sprintf(" (required includes %s in charges)", e.Charges.StringFixed(2))
	}
	if !e.OverdraftLimit.IsZero() {
		msg += fmt.Sprintf(", overdraft %s", e.OverdraftLimit.StringFixed(2))
	}
	return msg
}

// NewInsufficientFundsError builds the error from the account's current
// figures.
func NewInsufficientFundsError(accountNumber string, required, available, overdraft decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{
		AccountNumber:    accountNumber,
		RequiredAmount:   required,
		AvailableBalance: available,
		OverdraftLimit:   overdraft,
	}
}

// LimitKind distinguishes which ceiling a LimitExceededError refers to.
type LimitKind string

const (
	LimitSingleTransaction LimitKind = "single_transaction"
	LimitDaily             LimitKind = "daily"
	LimitMinimumAmount     LimitKind = "minimum_amount"
)

// LimitExceededError reports a rejected operation that breached a
// per-transaction or per-day ceiling (or fell below a product minimum).
type LimitExceededError struct {
	Kind      LimitKind
	Limit     decimal.Decimal
	Attempted decimal.Decimal
}

// NewLimitExceededError builds the error for the given ceiling.
func NewLimitExceededError(kind LimitKind, limit, attempted decimal.Decimal) *LimitExceededError {
	return &LimitExceededError{Kind: kind, Limit: limit, Attempted: attempted}
}

func (e *LimitExceededError) Error() string {
	switch e.Kind {
	case LimitMinimumAmount:
		return fmt.Sprintf("amount %s is below the minimum of %s",
			e.Attempted.StringFixed(2), e.Limit.StringFixed(2))
	case LimitDaily:
		return fmt.Sprintf("projected daily total %s exceeds the daily limit of %s",
			e.Attempted.StringFixed(2), e.Limit.StringFixed(2))
	default:
		return fmt.Sprintf("amount %s exceeds the single transaction limit of %s",
			e.Attempted.StringFixed(2), e.Limit.StringFixed(2))
	}
}
