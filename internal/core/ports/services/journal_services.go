package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// JournalPosterSvc posts double-entry journal records for transactions.
type JournalPosterSvc interface {
	// PostForTransaction builds, validates and persists the balanced journal
	// entry for a transaction inside the caller's database transaction, and
	// applies the GL running-balance changes. The entry is posted or the
	// whole database transaction fails.
	PostForTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction, actorID string) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryForTransaction retrieves the journal entry posted for a
	// transaction, with its items.
	GetEntryForTransaction(ctx context.Context, transactionID string) (*domain.JournalEntry, error)
}

// JournalVoiderSvc voids posted journal entries.
type JournalVoiderSvc interface {
	// VoidEntry voids a posted journal entry with the given reason and
	// backs its amounts out of the GL running balances. Only posted entries
	// can be voided.
	VoidEntry(ctx context.Context, entryID, reason, actorID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPosterSvc
	JournalReaderSvc
	JournalVoiderSvc
}
