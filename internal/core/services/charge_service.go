package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

const chargeCacheTTL = 5 * time.Minute

// chargeService resolves and applies transaction fees. Applying runs after
// the original transaction committed and never rolls it back; each fee is
// its own charge transaction with an income GL posting.
type chargeService struct {
	chargeRepo   portsrepo.ChargeRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryWithTx
	txnRepo      portsrepo.TransactionRepositoryWithTx
	journalSvc   portssvc.JournalPosterSvc
	aggregateSvc portssvc.AggregateRecorderSvc
	events       portssvc.EventPublisherSvc
	cache        *redis.Client
}

// NewChargeService creates a new ChargeService.
func NewChargeService(
	chargeRepo portsrepo.ChargeRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	journalSvc portssvc.JournalPosterSvc,
	aggregateSvc portssvc.AggregateRecorderSvc,
	events portssvc.EventPublisherSvc,
	cache *redis.Client,
) portssvc.ChargeSvcFacade {
	return &chargeService{
		chargeRepo:   chargeRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		journalSvc:   journalSvc,
		aggregateSvc: aggregateSvc,
		events:       events,
		cache:        cache,
	}
}

var _ portssvc.ChargeSvcFacade = (*chargeService)(nil)

// activeChargesByType loads the globally active charges for a transaction
// type, backed by a short-lived cache so the hot path rarely hits the
// database.
func (s *chargeService) activeChargesByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Charge, error) {
	key := "charges:active:" + string(txnType)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var charges []domain.Charge
			if err := json.Unmarshal([]byte(raw), &charges); err == nil {
				return charges, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("charge cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	charges, err := s.chargeRepo.FindActiveChargesByType(ctx, txnType)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(charges); err == nil {
			if err := s.cache.Set(ctx, key, raw, chargeCacheTTL).Err(); err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("charge cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
	}
	return charges, nil
}

// ResolveCharges returns the fees a transaction of the given type and amount
// incurs on an account. Account-specific bindings take precedence over the
// globally active set; zero-amount results are dropped.
func (s *chargeService) ResolveCharges(ctx context.Context, accountID string, txnType domain.TransactionType, amount decimal.Decimal, at time.Time) ([]portssvc.CalculatedCharge, error) {
	bindings, err := s.chargeRepo.FindAccountChargeBindings(ctx, accountID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var charges []domain.Charge
	for _, binding := range bindings {
		if !binding.ActiveAt(at) {
			continue
		}
		charge, err := s.chargeRepo.FindChargeByID(ctx, binding.ChargeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if charge.TxnType != txnType || !charge.IsActive {
			continue
		}
		charges = append(charges, *charge)
		seen[charge.ChargeID] = true
	}

	global, err := s.activeChargesByType(ctx, txnType)
	if err != nil {
		return nil, err
	}
	for _, charge := range global {
		if !seen[charge.ChargeID] {
			charges = append(charges, charge)
		}
	}

	var resolved []portssvc.CalculatedCharge
	for _, charge := range charges {
		fee := charge.Calculate(amount)
		if fee.IsPositive() {
			resolved = append(resolved, portssvc.CalculatedCharge{Charge: charge, Amount: fee})
		}
	}
	return resolved, nil
}

// PreviewCharges is the read-only fee quote used by callers before
// submitting a transaction.
func (s *chargeService) PreviewCharges(ctx context.Context, req dto.ChargePreviewRequest) (*dto.ChargePreviewResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}

	resolved, err := s.ResolveCharges(ctx, account.AccountID, domain.TransactionType(req.TransactionType), req.Amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	resp := &dto.ChargePreviewResponse{TotalAmount: decimal.Zero}
	for _, calc := range resolved {
		resp.Charges = append(resp.Charges, dto.ChargePreviewLine{
			ChargeID:   calc.Charge.ChargeID,
			ChargeName: calc.Charge.Name,
			ChargeType: string(calc.Charge.Type),
			Amount:     calc.Amount,
		})
		resp.TotalAmount = resp.TotalAmount.Add(calc.Amount)
	}
	return resp, nil
}

// ApplyCharges debits each resolved fee from the source account as its own
// charge transaction. A fee the account cannot cover is skipped with a
// warning; the original transaction is never rolled back.
func (s *chargeService) ApplyCharges(ctx context.Context, originalTxn domain.Transaction, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	resolved, err := s.ResolveCharges(ctx, originalTxn.SourceAccountID, originalTxn.Type, originalTxn.Amount, originalTxn.CreatedAt)
	if err != nil {
		return err
	}

	var firstErr error
	for _, calc := range resolved {
		if err := s.applyOne(ctx, originalTxn, calc, actorID); err != nil {
			logger.Error("failed to apply charge",
				slog.String("charge_id", calc.Charge.ChargeID),
				slog.String("transaction_id", originalTxn.TransactionID),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *chargeService) applyOne(ctx context.Context, originalTxn domain.Transaction, calc portssvc.CalculatedCharge, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{originalTxn.SourceAccountID})
	if err != nil {
		return err
	}
	acc := locked[originalTxn.SourceAccountID]

	if acc.AvailableBalance.LessThan(calc.Amount) {
		logger.Warn("skipping charge, insufficient funds",
			slog.String("charge_id", calc.Charge.ChargeID),
			slog.String("account_id", acc.AccountID))
		return nil
	}

	now := time.Now().UTC()
	before := acc.Snapshot()
	acc.LedgerBalance = acc.LedgerBalance.Sub(calc.Amount)
	acc.AvailableBalance = acc.AvailableBalance.Sub(calc.Amount)
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = actorID

	txn := domain.Transaction{
		TransactionID:         uuid.NewString(),
		InternalReference:     domain.NewInternalReference(),
		ExternalReference:     "CHG-" + originalTxn.InternalReference + "-" + calc.Charge.ChargeID[:8],
		Type:                  domain.TypeCharge,
		SourceAccountID:       acc.AccountID,
		CurrencyCode:          originalTxn.CurrencyCode,
		Amount:                calc.Amount,
		Description:           fmt.Sprintf("%s on %s", calc.Charge.Name, originalTxn.InternalReference),
		Status:                domain.StatusCompleted,
		SourceBefore:          before,
		SourceAfter:           acc.Snapshot(),
		OriginalTransactionID: &originalTxn.TransactionID,
		Metadata: map[string]any{
			"charge_id":            calc.Charge.ChargeID,
			"charge_name":          calc.Charge.Name,
			"gl_income_account_id": calc.Charge.GLIncomeAccountID,
		},
		AuditFields: domain.NewAuditFields(actorID, now),
	}

	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, acc); err != nil {
		return err
	}
	if err := s.accountRepo.SaveBalanceHistoryInTx(ctx, tx, domain.AccountBalanceHistory{
		HistoryID:     uuid.NewString(),
		AccountID:     acc.AccountID,
		TransactionID: txn.TransactionID,
		Balances:      acc.Snapshot(),
		BalanceDate:   now,
	}); err != nil {
		return err
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if _, err := s.journalSvc.PostForTransaction(ctx, tx, txn, actorID); err != nil {
		return err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return err
	}

	if err := s.aggregateSvc.RecordTransaction(ctx, txn); err != nil {
		logger.Error("failed to record charge aggregate", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
	}
	if err := s.events.PublishStatusChange(ctx, domain.StatusEventFromTransaction(txn)); err != nil {
		logger.Error("failed to publish charge status event", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
	}
	return nil
}
