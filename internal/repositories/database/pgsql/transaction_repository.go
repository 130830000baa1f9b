package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	"github.com/bankman-core/bankman/internal/models"
	"github.com/bankman-core/bankman/internal/utils/mapping"
	"github.com/bankman-core/bankman/internal/utils/pagination"
)

const transactionColumns = `transaction_id, internal_reference, external_reference, transaction_type,
		source_account_id, destination_account_id, currency_code, amount, description, status,
		source_ledger_balance_before, source_available_balance_before, source_locked_balance_before,
		source_ledger_balance_after, source_available_balance_after, source_locked_balance_after,
		destination_ledger_balance_before, destination_available_balance_before, destination_locked_balance_before,
		destination_ledger_balance_after, destination_available_balance_after, destination_locked_balance_after,
		original_transaction_id, reversal_transaction_id, metadata,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.InternalReference,
		&m.ExternalReference,
		&m.TransactionType,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.CurrencyCode,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.SourceLedgerBefore,
		&m.SourceAvailableBefore,
		&m.SourceLockedBefore,
		&m.SourceLedgerAfter,
		&m.SourceAvailableAfter,
		&m.SourceLockedAfter,
		&m.DestLedgerBefore,
		&m.DestAvailableBefore,
		&m.DestLockedBefore,
		&m.DestLedgerAfter,
		&m.DestAvailableAfter,
		&m.DestLockedAfter,
		&m.OriginalTransactionID,
		&m.ReversalTransactionID,
		&m.Metadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransactionInTx persists a transaction row inside the given database
// transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return fmt.Errorf("failed to map transaction %s: %w", txn.TransactionID, err)
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, $27, $28, $29);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.InternalReference,
		m.ExternalReference,
		m.TransactionType,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.CurrencyCode,
		m.Amount,
		m.Description,
		m.Status,
		m.SourceLedgerBefore,
		m.SourceAvailableBefore,
		m.SourceLockedBefore,
		m.SourceLedgerAfter,
		m.SourceAvailableAfter,
		m.SourceLockedAfter,
		m.DestLedgerBefore,
		m.DestAvailableBefore,
		m.DestLockedBefore,
		m.DestLedgerAfter,
		m.DestAvailableAfter,
		m.DestLockedAfter,
		m.OriginalTransactionID,
		m.ReversalTransactionID,
		m.Metadata,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with reference %s already exists", apperrors.ErrDuplicate, m.ExternalReference)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindTransactionByExternalReference retrieves a transaction by the
// caller-supplied reference.
func (r *PgxTransactionRepository) FindTransactionByExternalReference(ctx context.Context, externalReference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE external_reference = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, externalReference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with reference %s not found", externalReference))
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", externalReference, err)
	}

	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map transaction with reference %s: %w", externalReference, err)
	}
	return &txn, nil
}

// FindTransactionByIDForUpdate retrieves a transaction and locks its row.
// Must be called within a transaction.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`

	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}

	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, fmt.Errorf("failed to map transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// UpdateTransactionStatus moves a transaction to a new status.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, transactionID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}
	return nil
}

// LinkReversalInTx sets the reversal pointer on the original transaction.
// The WHERE clause refuses to overwrite an existing pointer so a second
// concurrent reversal fails even after the row lock is released.
func (r *PgxTransactionRepository) LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalTransactionID, reversalTransactionID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET reversal_transaction_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND reversal_transaction_id IS NULL;
	`
	ct, err := tx.Exec(ctx, query, originalTransactionID, reversalTransactionID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to link reversal for transaction %s: %w", originalTransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s already reversed", apperrors.ErrConflict, originalTransactionID)
	}
	return nil
}

// ListTransactionsByAccountID retrieves a paginated list of transactions
// touching an account, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (source_account_id = $1 OR destination_account_id = $1)
	`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		cursorCreatedAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursorCreatedAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map transaction %s: %w", m.TransactionID, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		token = &t
	}
	return txns, token, nil
}
