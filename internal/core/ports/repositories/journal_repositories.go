package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its items.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the journal entry posted for a
	// transaction, with its items.
	FindEntryByReference(ctx context.Context, referenceID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntryInTx persists a journal entry and its items inside the given
	// database transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// VoidEntryInTx marks a posted journal entry voided, recording the
	// reason and the actor, inside the given database transaction. A
	// non-posted entry yields ErrConflict.
	VoidEntryInTx(ctx context.Context, tx pgx.Tx, entryID, reason, voidedBy string, voidedAt time.Time) error
}

// GLAccountReader defines read operations for the chart of accounts
type GLAccountReader interface {
	// FindGLAccountByID retrieves a GL account by its unique identifier.
	FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error)

	// FindGLAccountByCode retrieves a GL account by its account code.
	FindGLAccountByCode(ctx context.Context, accountCode string) (*domain.GLAccount, error)
}

// GLAccountWriter defines write operations for the chart of accounts
type GLAccountWriter interface {
	// ApplyGLBalanceDeltasInTx applies signed running-balance changes to GL
	// accounts inside the given database transaction.
	ApplyGLBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	GLAccountReader
	GLAccountWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
