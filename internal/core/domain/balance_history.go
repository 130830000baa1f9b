package domain

import "time"

// AccountBalanceHistory is one row per committed balance mutation, written
// inside the same database transaction as the mutation itself. It gives an
// audit trail of the triplet over time independent of transaction rows.
type AccountBalanceHistory struct {
	HistoryID     string          `json:"historyID"`
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID"`
	Balances      BalanceSnapshot `json:"balances"`
	BalanceDate   time.Time       `json:"balanceDate"`
}
