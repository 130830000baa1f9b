package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within the given transaction. Callers must pass the IDs in a
	// stable order; rows are locked in ascending account_id order to avoid
	// deadlocks between concurrent transfers.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalancesInTx writes an account's balance triplet inside
	// the given transaction. The update is versioned: it fails with
	// ErrConcurrentModification if the row version moved since the account
	// was read.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// SaveBalanceHistoryInTx appends a balance snapshot row inside the given
	// transaction.
	SaveBalanceHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.AccountBalanceHistory) error
}

// BalanceHistoryReader defines read operations for the balance audit trail
type BalanceHistoryReader interface {
	// ListBalanceHistory retrieves a paginated list of balance snapshots for
	// an account, newest first, using token-based pagination.
	ListBalanceHistory(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountBalanceHistory, *string, error)
}

// ProductReader defines read operations for product configuration
type ProductReader interface {
	// FindProductByID retrieves the product an account is opened under.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	BalanceHistoryReader
	ProductReader
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
