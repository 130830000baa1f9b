package services

import (
	"context"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by its unique identifier.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated statement for an account.
	ListTransactionsByAccount(ctx context.Context, accountNumber string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the balance-mutating operations of the engine.
// Every method locks the affected account rows, mutates the balance triplet,
// persists the transaction with before and after snapshots, and posts the
// matching journal entry, all in one database transaction.
type TransactionWriterSvc interface {
	// ProcessDeposit credits an account.
	ProcessDeposit(ctx context.Context, req dto.DepositRequest, actorID string) (*domain.Transaction, error)

	// ProcessWithdrawal debits an account after funds and limit checks.
	ProcessWithdrawal(ctx context.Context, req dto.WithdrawalRequest, actorID string) (*domain.Transaction, error)

	// ProcessTransfer moves funds between two accounts atomically.
	ProcessTransfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.Transaction, error)

	// CreateReversal creates and applies the compensating transaction for a
	// completed transaction.
	CreateReversal(ctx context.Context, transactionID string, req dto.ReversalRequest, actorID string) (*domain.Transaction, error)
}

// LienSvc defines the lien lifecycle operations
type LienSvc interface {
	// PlaceLien moves funds from available to locked without changing the
	// ledger balance.
	PlaceLien(ctx context.Context, req dto.PlaceLienRequest, actorID string) (*domain.Transaction, error)

	// ReleaseLien moves a lien's funds back from locked to available.
	ReleaseLien(ctx context.Context, req dto.ReleaseLienRequest, actorID string) (*domain.Transaction, error)

	// ReleaseAndWithdraw releases a lien and withdraws the released amount
	// in one atomic operation.
	ReleaseAndWithdraw(ctx context.Context, req dto.ReleaseAndWithdrawRequest, actorID string) (*domain.Transaction, error)

	// QueueReleaseLien validates the request, queues the release as a
	// background job and returns its acknowledgement. The outcome reaches
	// the caller's webhook, keyed by job id.
	QueueReleaseLien(ctx context.Context, req dto.ReleaseLienRequest, actorID string) (*dto.JobAcceptedResponse, error)

	// QueueReleaseAndWithdraw queues the atomic release-and-withdraw as a
	// background job and returns its acknowledgement.
	QueueReleaseAndWithdraw(ctx context.Context, req dto.ReleaseAndWithdrawRequest, actorID string) (*dto.JobAcceptedResponse, error)
}

// TransactionSvcFacade combines all transaction engine interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	LienSvc
}
