package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	"github.com/bankman-core/bankman/internal/models"
	"github.com/bankman-core/bankman/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_number, entry_date, reference_type, reference_id, currency_code,
		description, status, posted_by_user_id, posted_at,
		void_reason, voided_by_user_id, voided_at,
		created_at, created_by, last_updated_at, last_updated_by`

const glAccountColumns = `gl_account_id, account_code, name, account_type, parent_account_id,
		currency_code, current_balance, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveEntryInTx persists a journal entry and its items inside the given
// database transaction. Items are inserted as a batch.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.ReferenceType,
		m.ReferenceID,
		m.CurrencyCode,
		m.Description,
		m.Status,
		m.PostedBy,
		m.PostedAt,
		m.VoidReason,
		m.VoidedBy,
		m.VoidedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryID, err)
	}

	itemQuery := `
		INSERT INTO journal_entry_items (item_id, entry_id, gl_account_id, debit_amount, credit_amount, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range entry.Items {
		mi := mapping.ToModelJournalEntryItem(item)
		batch.Queue(itemQuery, mi.ItemID, mi.EntryID, mi.GLAccountID, mi.DebitAmount, mi.CreditAmount, mi.Description)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to save journal entry item for entry %s: %w", m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close journal item batch: %w", err)
	}
	return batchErr
}

// VoidEntryInTx marks a posted journal entry voided, recording the reason
// and the actor, inside the given database transaction. The status guard in
// the WHERE clause makes a double void impossible even under races.
func (r *PgxJournalRepository) VoidEntryInTx(ctx context.Context, tx pgx.Tx, entryID, reason, voidedBy string, voidedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, void_reason = $3, voided_by_user_id = $4, voided_at = $5,
		    last_updated_at = $5, last_updated_by = $4
		WHERE entry_id = $1 AND status = $6;
	`
	ct, err := tx.Exec(ctx, query, entryID, string(domain.EntryVoided), reason, voidedBy, voidedAt, string(domain.EntryPosted))
	if err != nil {
		return fmt.Errorf("failed to void journal entry %s: %w", entryID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, whereClause string, arg any) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + whereClause + `;`

	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.CurrencyCode,
		&m.Description,
		&m.Status,
		&m.PostedBy,
		&m.PostedAt,
		&m.VoidReason,
		&m.VoidedBy,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry not found")
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}

	entry := mapping.ToDomainJournalEntry(m)

	itemsQuery := `
		SELECT item_id, entry_id, gl_account_id, debit_amount, credit_amount, description
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for journal entry %s: %w", entry.EntryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mi models.JournalEntryItem
		if err := rows.Scan(&mi.ItemID, &mi.EntryID, &mi.GLAccountID, &mi.DebitAmount, &mi.CreditAmount, &mi.Description); err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		entry.Items = append(entry.Items, mapping.ToDomainJournalEntryItem(mi))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", err)
	}

	return &entry, nil
}

// FindEntryByID retrieves a journal entry with its items.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "entry_id = $1", entryID)
}

// FindEntryByReference retrieves the journal entry posted for a transaction,
// with its items.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, referenceID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "reference_id = $1", referenceID)
}

func scanGLAccount(row rowScanner) (models.GLAccount, error) {
	var m models.GLAccount
	err := row.Scan(
		&m.GLAccountID,
		&m.AccountCode,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.CurrencyCode,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindGLAccountByID retrieves a GL account by its ID.
func (r *PgxJournalRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE gl_account_id = $1;`

	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, glAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("GL account %s not found", glAccountID))
		}
		return nil, fmt.Errorf("failed to find GL account by ID %s: %w", glAccountID, err)
	}

	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

// FindGLAccountByCode retrieves a GL account by its account code.
func (r *PgxJournalRepository) FindGLAccountByCode(ctx context.Context, accountCode string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE account_code = $1;`

	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("GL account with code %s not found", accountCode))
		}
		return nil, fmt.Errorf("failed to find GL account by code %s: %w", accountCode, err)
	}

	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

// ApplyGLBalanceDeltasInTx applies signed running-balance changes to GL
// accounts within a transaction.
func (r *PgxJournalRepository) ApplyGLBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE gl_accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE gl_account_id = $1;
	`
	batch := &pgx.Batch{}
	glAccountIDs := make([]string, 0, len(deltas))
	for glAccountID, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, glAccountID, delta, updatedAt, updatedBy)
		glAccountIDs = append(glAccountIDs, glAccountID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance of GL account %s: %w", glAccountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: GL account %s not found during balance update", apperrors.ErrNotFound, glAccountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close GL balance batch: %w", err)
	}
	return batchErr
}
