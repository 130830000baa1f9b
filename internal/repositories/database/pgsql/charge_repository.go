package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	"github.com/bankman-core/bankman/internal/models"
	"github.com/bankman-core/bankman/internal/utils/mapping"
)

const chargeColumns = `charge_id, name, charge_type, amount, percentage, currency_code, txn_type,
		description, is_active, gl_income_account_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxChargeRepository struct {
	BaseRepository
}

// newPgxChargeRepository creates a new repository for charge configuration.
func newPgxChargeRepository(pool *pgxpool.Pool) portsrepo.ChargeRepositoryFacade {
	return &PgxChargeRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ChargeRepositoryFacade = (*PgxChargeRepository)(nil)

func scanCharge(row rowScanner) (models.Charge, error) {
	var m models.Charge
	err := row.Scan(
		&m.ChargeID,
		&m.Name,
		&m.ChargeType,
		&m.Amount,
		&m.Percentage,
		&m.CurrencyCode,
		&m.TxnType,
		&m.Description,
		&m.IsActive,
		&m.GLIncomeAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxChargeRepository) findTiers(ctx context.Context, chargeIDs []string) (map[string][]models.ChargeTier, error) {
	if len(chargeIDs) == 0 {
		return map[string][]models.ChargeTier{}, nil
	}

	query := `
		SELECT tier_id, charge_id, from_amount, to_amount, fixed_amount, percentage
		FROM charge_tiers
		WHERE charge_id = ANY($1)
		ORDER BY charge_id, from_amount;
	`
	rows, err := r.Pool.Query(ctx, query, chargeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query charge tiers: %w", err)
	}
	defer rows.Close()

	tiers := make(map[string][]models.ChargeTier)
	for rows.Next() {
		var m models.ChargeTier
		if err := rows.Scan(&m.TierID, &m.ChargeID, &m.FromAmount, &m.ToAmount, &m.FixedAmount, &m.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan charge tier row: %w", err)
		}
		tiers[m.ChargeID] = append(tiers[m.ChargeID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating charge tier rows: %w", err)
	}
	return tiers, nil
}

// FindChargeByID retrieves a charge with its tiers.
func (r *PgxChargeRepository) FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE charge_id = $1;`

	m, err := scanCharge(r.Pool.QueryRow(ctx, query, chargeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("charge %s not found", chargeID))
		}
		return nil, fmt.Errorf("failed to find charge by ID %s: %w", chargeID, err)
	}

	tiers, err := r.findTiers(ctx, []string{m.ChargeID})
	if err != nil {
		return nil, err
	}

	charge := mapping.ToDomainCharge(m, tiers[m.ChargeID])
	return &charge, nil
}

// FindActiveChargesByType retrieves all globally active charges applying to
// a transaction type, with their tiers.
func (r *PgxChargeRepository) FindActiveChargesByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE txn_type = $1 AND is_active = TRUE ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, string(txnType))
	if err != nil {
		return nil, fmt.Errorf("failed to query active charges for type %s: %w", txnType, err)
	}
	defer rows.Close()

	modelCharges := []models.Charge{}
	chargeIDs := []string{}
	for rows.Next() {
		m, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge row: %w", err)
		}
		modelCharges = append(modelCharges, m)
		chargeIDs = append(chargeIDs, m.ChargeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating charge rows: %w", err)
	}

	tiers, err := r.findTiers(ctx, chargeIDs)
	if err != nil {
		return nil, err
	}

	charges := make([]domain.Charge, len(modelCharges))
	for i, m := range modelCharges {
		charges[i] = mapping.ToDomainCharge(m, tiers[m.ChargeID])
	}
	return charges, nil
}

// FindAccountChargeBindings retrieves the account-specific charge bindings
// for an account.
func (r *PgxChargeRepository) FindAccountChargeBindings(ctx context.Context, accountID string) ([]domain.AccountChargeBinding, error) {
	query := `
		SELECT binding_id, account_id, charge_id, is_active, effective_from, effective_until
		FROM account_charges
		WHERE account_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query charge bindings for account %s: %w", accountID, err)
	}
	defer rows.Close()

	bindings := []domain.AccountChargeBinding{}
	for rows.Next() {
		var m models.AccountCharge
		if err := rows.Scan(&m.BindingID, &m.AccountID, &m.ChargeID, &m.IsActive, &m.EffectiveFrom, &m.EffectiveUntil); err != nil {
			return nil, fmt.Errorf("failed to scan charge binding row: %w", err)
		}
		bindings = append(bindings, mapping.ToDomainAccountChargeBinding(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating charge binding rows: %w", err)
	}
	return bindings, nil
}
