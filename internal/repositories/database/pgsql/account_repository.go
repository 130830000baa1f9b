package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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

const accountColumns = `account_id, account_number, client_id, product_id, account_name, currency_code, status,
		ledger_balance, available_balance, locked_amount,
		allow_overdraft, overdraft_limit, overdraft_interest_rate, single_transaction_limit,
		version, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.ClientID,
		&m.ProductID,
		&m.AccountName,
		&m.CurrencyCode,
		&m.Status,
		&m.LedgerBalance,
		&m.AvailableBalance,
		&m.LockedAmount,
		&m.AllowOverdraft,
		&m.OverdraftLimit,
		&m.OverdraftRate,
		&m.SingleTransactionLimit,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account with a zeroed balance triplet.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.ClientID,
		m.ProductID,
		m.AccountName,
		m.CurrencyCode,
		m.Status,
		m.LedgerBalance,
		m.AvailableBalance,
		m.LockedAmount,
		m.AllowOverdraft,
		m.OverdraftLimit,
		m.OverdraftRate,
		m.SingleTransactionLimit,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountNumber))
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Rows are locked in ascending account_id order so that
// concurrent transfers touching the same pair cannot deadlock. Must be called
// within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx writes the account's balance triplet within a
// transaction. The WHERE clause checks the version the account was read at;
// zero rows affected means another writer got there first.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	query := `
		UPDATE accounts
		SET ledger_balance = $2,
			available_balance = $3,
			locked_amount = $4,
			version = version + 1,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE account_id = $1 AND version = $7;
	`
	ct, err := tx.Exec(ctx, query,
		account.AccountID,
		account.LedgerBalance,
		account.AvailableBalance,
		account.LockedAmount,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update balances for account %s: %w", account.AccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s version %d", apperrors.ErrConcurrentModification, account.AccountID, account.Version)
	}
	return nil
}

// SaveBalanceHistoryInTx appends a balance snapshot row within a transaction.
func (r *PgxAccountRepository) SaveBalanceHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.AccountBalanceHistory) error {
	query := `
		INSERT INTO account_balance_history (history_id, account_id, transaction_id, ledger_balance, available_balance, locked_amount, balance_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		history.HistoryID,
		history.AccountID,
		history.TransactionID,
		history.Balances.Ledger,
		history.Balances.Available,
		history.Balances.Locked,
		history.BalanceDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save balance history for account %s: %w", history.AccountID, err)
	}
	return nil
}

// ListBalanceHistory retrieves a paginated list of balance snapshots for an
// account, newest first.
func (r *PgxAccountRepository) ListBalanceHistory(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountBalanceHistory, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT history_id, account_id, transaction_id, ledger_balance, available_balance, locked_amount, balance_date
		FROM account_balance_history
		WHERE account_id = $1
	`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (balance_date, history_id) < ($2, $3)`
		args = append(args, cursorDate, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY balance_date DESC, history_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query balance history for account %s: %w", accountID, err)
	}
	defer rows.Close()

	history := []domain.AccountBalanceHistory{}
	for rows.Next() {
		var m models.AccountBalanceHistory
		if err := rows.Scan(
			&m.HistoryID,
			&m.AccountID,
			&m.TransactionID,
			&m.LedgerBalance,
			&m.AvailableBalance,
			&m.LockedAmount,
			&m.BalanceDate,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan balance history row: %w", err)
		}
		history = append(history, mapping.ToDomainBalanceHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating balance history rows: %w", err)
	}

	var token *string
	if len(history) > limit {
		history = history[:limit]
		last := history[len(history)-1]
		t := pagination.EncodeCursor(last.BalanceDate, last.HistoryID)
		token = &t
	}
	return history, token, nil
}

// FindProductByID retrieves the product an account was opened under.
func (r *PgxAccountRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, currency_code, minimum_withdrawal_amount, daily_transaction_limit, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1;
	`
	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.Name,
		&m.CurrencyCode,
		&m.MinimumWithdrawalAmount,
		&m.DailyTransactionLimit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}
