package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a wallet account.
type AccountStatus string

const (
	AccountPendingActivation AccountStatus = "pending_activation"
	AccountActive            AccountStatus = "active"
	AccountDormant           AccountStatus = "dormant"
	AccountSuspended         AccountStatus = "suspended"
	AccountClosed            AccountStatus = "closed"
)

// BalanceSnapshot captures the balance triplet of an account at a point in
// time. Snapshots are taken before and after every balance mutation and
// persisted on the transaction row.
type BalanceSnapshot struct {
	Ledger    decimal.Decimal `json:"ledger"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
}

// Account is a client wallet account. Its balance triplet is mutated
// exclusively through the transaction engine; every committed mutation must
// preserve Available + Locked == Ledger.
type Account struct {
	AccountID     string        `json:"accountID"`
	AccountNumber string        `json:"accountNumber"`
	ClientID      string        `json:"clientID"`
	ProductID     string        `json:"productID"`
	AccountName   string        `json:"accountName"`
	CurrencyCode  string        `json:"currencyCode"`
	Status        AccountStatus `json:"status"`

	LedgerBalance    decimal.Decimal `json:"ledgerBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	LockedAmount     decimal.Decimal `json:"lockedAmount"`

	AllowOverdraft         bool            `json:"allowOverdraft"`
	OverdraftLimit         decimal.Decimal `json:"overdraftLimit"`
	OverdraftRate          decimal.Decimal `json:"overdraftRate"`
	SingleTransactionLimit decimal.Decimal `json:"singleTransactionLimit"` // zero means unset

	// Version is the optimistic-concurrency row version; incremented on
	// every balance save.
	Version int64 `json:"version"`

	AuditFields
}

// IsActive reports whether the account may be debited.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// HasOverdraftFacility reports whether the account carries a usable
// overdraft line.
func (a *Account) HasOverdraftFacility() bool {
	return a.AllowOverdraft && a.OverdraftLimit.IsPositive()
}

// AvailableOverdraft returns the remaining overdraft headroom: the full
// overdraft limit, reduced by however far the ledger has already gone
// negative, floored at zero.
func (a *Account) AvailableOverdraft() decimal.Decimal {
	if !a.HasOverdraftFacility() {
		return decimal.Zero
	}
	headroom := a.OverdraftLimit
	if a.LedgerBalance.IsNegative() {
		headroom = headroom.Add(a.LedgerBalance)
	}
	if headroom.IsNegative() {
		return decimal.Zero
	}
	return headroom
}

// BalancesConsistent reports the core invariant: available + locked equals
// ledger.
func (a *Account) BalancesConsistent() bool {
	return a.AvailableBalance.Add(a.LockedAmount).Equal(a.LedgerBalance)
}

// Snapshot returns the current balance triplet.
func (a *Account) Snapshot() BalanceSnapshot {
	return BalanceSnapshot{
		Ledger:    a.LedgerBalance,
		Available: a.AvailableBalance,
		Locked:    a.LockedAmount,
	}
}
