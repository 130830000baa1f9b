package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/dto"
)

// CalculatedCharge is one resolved fee for a transaction.
type CalculatedCharge struct {
	Charge domain.Charge
	Amount decimal.Decimal
}

// ChargeResolverSvc computes which fees apply to a transaction.
type ChargeResolverSvc interface {
	// ResolveCharges returns the fees a transaction of the given type and
	// amount incurs on an account at the given instant. Account-specific
	// bindings take precedence over globally active charges; zero-amount
	// results are dropped.
	ResolveCharges(ctx context.Context, accountID string, txnType domain.TransactionType, amount decimal.Decimal, at time.Time) ([]CalculatedCharge, error)

	// PreviewCharges is the read-only fee quote used by callers before
	// submitting a transaction.
	PreviewCharges(ctx context.Context, req dto.ChargePreviewRequest) (*dto.ChargePreviewResponse, error)
}

// ChargeApplierSvc applies resolved fees after a transaction completes.
type ChargeApplierSvc interface {
	// ApplyCharges debits each fee from the account as its own charge
	// transaction with income GL posting. Failures are logged and never
	// roll back the original transaction.
	ApplyCharges(ctx context.Context, originalTxn domain.Transaction, actorID string) error
}

// ChargeSvcFacade combines all charge-related service interfaces
type ChargeSvcFacade interface {
	ChargeResolverSvc
	ChargeApplierSvc
}
