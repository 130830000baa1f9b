package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// ValidateEntryItems checks that a journal entry's items form a postable
// double entry: at least two lines, every line strictly one-sided with a
// positive amount, and total debits equal to total credits.
func ValidateEntryItems(items []domain.JournalEntryItem) error {
	if len(items) < 2 {
		return fmt.Errorf("journal entry must have at least two items")
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	for _, item := range items {
		debitSet := item.DebitAmount.IsPositive()
		creditSet := item.CreditAmount.IsPositive()

		if item.DebitAmount.IsNegative() || item.CreditAmount.IsNegative() {
			return fmt.Errorf("journal item for GL account %s has a negative amount", item.GLAccountID)
		}
		if debitSet == creditSet {
			return fmt.Errorf("journal item for GL account %s must set exactly one of debit and credit", item.GLAccountID)
		}

		totalDebits = totalDebits.Add(item.DebitAmount)
		totalCredits = totalCredits.Add(item.CreditAmount)
	}

	if !totalDebits.Equal(totalCredits) {
		return fmt.Errorf("journal entry does not balance: debits %s, credits %s",
			totalDebits.String(), totalCredits.String())
	}
	return nil
}

// BalanceDelta returns the running-balance change a line causes on a GL
// account of the given type.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func BalanceDelta(accountType domain.GLAccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.GLAsset, domain.GLExpense:
		return debit.Sub(credit), nil
	case domain.GLLiability, domain.GLEquity, domain.GLIncome:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown GL account type '%s'", accountType)
	}
}
