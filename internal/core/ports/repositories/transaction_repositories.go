package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByExternalReference retrieves a transaction by the
	// caller-supplied reference. Used for idempotency checks.
	FindTransactionByExternalReference(ctx context.Context, externalReference string) (*domain.Transaction, error)

	// FindTransactionByIDForUpdate retrieves a transaction and locks its row
	// within the given transaction. Used when linking reversals so that two
	// concurrent reversals of the same transaction cannot both succeed.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions
	// touching an account, newest first, using token-based pagination.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionInTx persists a transaction row inside the given
	// database transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction to a new status.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error

	// LinkReversalInTx sets the reversal pointer on the original transaction
	// inside the given database transaction.
	LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalTransactionID, reversalTransactionID string, updatedBy string, updatedAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
