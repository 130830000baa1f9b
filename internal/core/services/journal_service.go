package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/utils/accounting"
)

// GLMapping names the GL accounts the engine posts against, keyed by account
// code. Deployments map these onto their own chart of accounts; the defaults
// match the standard seed data.
type GLMapping struct {
	CashCode             string
	CustomerDepositsCode string
	FeeIncomeCode        string
}

// DefaultGLMapping returns the mapping for the seeded chart of accounts.
func DefaultGLMapping() GLMapping {
	return GLMapping{
		CashCode:             "101200",
		CustomerDepositsCode: "201100",
		FeeIncomeCode:        "401100",
	}
}

// journalService posts the double-entry record for every balance mutation.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	glMapping   GLMapping
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, glMapping GLMapping) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		glMapping:   glMapping,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// newEntryNumber generates a human-scannable journal entry number.
func newEntryNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "JE-" + at.Format("20060102") + "-" + suffix
}

// entryLegs returns the debit and credit GL account codes for a transaction
// type. Charge transactions may override the credit side with the charge's
// own income account via metadata.
func (s *journalService) entryLegs(txn domain.Transaction) (debitCode, creditCode string, err error) {
	switch txn.Type {
	case domain.TypeDeposit:
		return s.glMapping.CashCode, s.glMapping.CustomerDepositsCode, nil
	case domain.TypeWithdrawal:
		return s.glMapping.CustomerDepositsCode, s.glMapping.CashCode, nil
	case domain.TypeTransfer:
		// Both legs sit in customer deposits; the entry still records the
		// movement for the audit trail.
		return s.glMapping.CustomerDepositsCode, s.glMapping.CustomerDepositsCode, nil
	case domain.TypeCharge:
		return s.glMapping.CustomerDepositsCode, s.glMapping.FeeIncomeCode, nil
	default:
		return "", "", fmt.Errorf("%w: no journal posting defined for transaction type %s", apperrors.ErrValidation, txn.Type)
	}
}

// PostForTransaction builds, validates and persists the balanced journal
// entry for a transaction inside the caller's database transaction, and
// applies the GL running-balance changes. Liens and lien releases move no
// ledger money and produce no entry.
func (s *journalService) PostForTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction, actorID string) (*domain.JournalEntry, error) {
	if txn.Type == domain.TypeLien || txn.Type == domain.TypeLienRelease {
		return nil, nil
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	var items []domain.JournalEntryItem
	if txn.Type == domain.TypeReversal {
		var err error
		items, err = s.mirrorOriginalEntry(ctx, txn, entryID)
		if err != nil {
			return nil, err
		}
	} else {
		debitCode, creditCode, err := s.entryLegs(txn)
		if err != nil {
			return nil, err
		}

		debitAccount, err := s.journalRepo.FindGLAccountByCode(ctx, debitCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve debit GL account %s: %w", debitCode, err)
		}

		creditAccountID := ""
		if txn.Type == domain.TypeCharge {
			if id, ok := txn.Metadata["gl_income_account_id"].(string); ok && id != "" {
				creditAccountID = id
			}
		}
		if creditAccountID == "" {
			creditAccount, err := s.journalRepo.FindGLAccountByCode(ctx, creditCode)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve credit GL account %s: %w", creditCode, err)
			}
			creditAccountID = creditAccount.GLAccountID
		}

		items = []domain.JournalEntryItem{
			{
				ItemID:      uuid.NewString(),
				EntryID:     entryID,
				GLAccountID: debitAccount.GLAccountID,
				DebitAmount: txn.Amount,
				Description: txn.Description,
			},
			{
				ItemID:       uuid.NewString(),
				EntryID:      entryID,
				GLAccountID:  creditAccountID,
				CreditAmount: txn.Amount,
				Description:  txn.Description,
			},
		}
	}

	if err := accounting.ValidateEntryItems(items); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalancedEntry, err.Error())
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		EntryNumber:   newEntryNumber(now),
		EntryDate:     now,
		ReferenceType: txn.Type,
		ReferenceID:   txn.TransactionID,
		CurrencyCode:  txn.CurrencyCode,
		Description:   txn.Description,
		Status:        domain.EntryPosted,
		PostedBy:      actorID,
		PostedAt:      &now,
		Items:         items,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	deltas, err := s.glBalanceDeltas(ctx, items)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.ApplyGLBalanceDeltasInTx(ctx, tx, deltas, actorID, now); err != nil {
		return nil, err
	}

	return &entry, nil
}

// mirrorOriginalEntry builds the items of a reversal entry by swapping the
// debit and credit sides of the original transaction's entry.
func (s *journalService) mirrorOriginalEntry(ctx context.Context, txn domain.Transaction, entryID string) ([]domain.JournalEntryItem, error) {
	if txn.OriginalTransactionID == nil {
		return nil, fmt.Errorf("%w: reversal transaction %s has no original transaction", apperrors.ErrValidation, txn.TransactionID)
	}

	original, err := s.journalRepo.FindEntryByReference(ctx, *txn.OriginalTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry of original transaction %s: %w", *txn.OriginalTransactionID, err)
	}

	items := make([]domain.JournalEntryItem, len(original.Items))
	for i, item := range original.Items {
		items[i] = domain.JournalEntryItem{
			ItemID:       uuid.NewString(),
			EntryID:      entryID,
			GLAccountID:  item.GLAccountID,
			DebitAmount:  item.CreditAmount,
			CreditAmount: item.DebitAmount,
			Description:  txn.Description,
		}
	}
	return items, nil
}

// glBalanceDeltas folds entry items into per-GL-account running balance
// changes.
func (s *journalService) glBalanceDeltas(ctx context.Context, items []domain.JournalEntryItem) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal)
	for _, item := range items {
		glAccount, err := s.journalRepo.FindGLAccountByID(ctx, item.GLAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve GL account %s: %w", item.GLAccountID, err)
		}
		delta, err := accounting.BalanceDelta(glAccount.Type, item.DebitAmount, item.CreditAmount)
		if err != nil {
			return nil, err
		}
		deltas[item.GLAccountID] = deltas[item.GLAccountID].Add(delta)
	}
	return deltas, nil
}

// GetEntryForTransaction retrieves the journal entry posted for a
// transaction, with its items.
func (s *journalService) GetEntryForTransaction(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByReference(ctx, transactionID)
}

// VoidEntry voids a posted journal entry and backs its amounts out of the
// GL running balances. Only posted entries can be voided, and the reason is
// mandatory; the entry's items are kept untouched as the audit record of
// what was originally posted.
func (s *journalService) VoidEntry(ctx context.Context, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a void reason is required", apperrors.ErrValidation)
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: journal entry %s is %s, only posted entries can be voided", apperrors.ErrConflict, entryID, entry.Status)
	}

	deltas, err := s.glBalanceDeltas(ctx, entry.Items)
	if err != nil {
		return nil, err
	}
	for glAccountID, delta := range deltas {
		deltas[glAccountID] = delta.Neg()
	}

	now := time.Now().UTC()
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx) //nolint:errcheck

	if err := s.journalRepo.VoidEntryInTx(ctx, tx, entryID, reason, actorID, now); err != nil {
		return nil, err
	}
	if err := s.journalRepo.ApplyGLBalanceDeltasInTx(ctx, tx, deltas, actorID, now); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Status = domain.EntryVoided
	entry.VoidReason = reason
	entry.VoidedBy = actorID
	entry.VoidedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	return entry, nil
}
