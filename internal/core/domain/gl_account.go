package domain

import "github.com/shopspring/decimal"

// GLAccountType is the fundamental accounting type of a GL account.
type GLAccountType string

const (
	GLAsset     GLAccountType = "asset"
	GLLiability GLAccountType = "liability"
	GLEquity    GLAccountType = "equity"
	GLIncome    GLAccountType = "income"
	GLExpense   GLAccountType = "expense"
)

// GLAccount is a node in the hierarchical chart of accounts with a running
// balance maintained by journal posting.
type GLAccount struct {
	GLAccountID     string          `json:"glAccountID"`
	AccountCode     string          `json:"accountCode"`
	Name            string          `json:"name"`
	Type            GLAccountType   `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// PostingDelta returns the running-balance change a posting of the given
// debit and credit amounts causes on this account, per the standard sign
// convention: debits increase assets and expenses, credits increase
// liabilities, equity and income.
func (g *GLAccount) PostingDelta(debit, credit decimal.Decimal) decimal.Decimal {
	switch g.Type {
	case GLAsset, GLExpense:
		return debit.Sub(credit)
	default:
		return credit.Sub(debit)
	}
}
