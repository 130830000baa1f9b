package repositories

import (
	"context"

	"github.com/bankman-core/bankman/internal/core/domain"
)

// ChargeReader defines read operations for charge configuration
type ChargeReader interface {
	// FindChargeByID retrieves a charge with its tiers.
	FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error)

	// FindActiveChargesByType retrieves all globally active charges that
	// apply to a transaction type, with their tiers.
	FindActiveChargesByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Charge, error)

	// FindAccountChargeBindings retrieves the account-specific charge
	// bindings for an account.
	FindAccountChargeBindings(ctx context.Context, accountID string) ([]domain.AccountChargeBinding, error)
}

// ChargeRepositoryFacade combines all charge-related repository interfaces.
// Charges are configured out of band; this service only reads them.
type ChargeRepositoryFacade interface {
	ChargeReader
}
