package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	"github.com/bankman-core/bankman/internal/dto"
)

// PlaceLien moves funds from available to locked without changing the
// ledger balance. Liens never dip into overdraft headroom.
func (s *transactionService) PlaceLien(ctx context.Context, req dto.PlaceLienRequest, actorID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := s.checkIdempotency(ctx, req.ExternalReference); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if account.CurrencyCode != req.CurrencyCode {
		return nil, fmt.Errorf("%w: account currency %s does not match %s", apperrors.ErrValidation, account.CurrencyCode, req.CurrencyCode)
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	locked, err := s.lockAccounts(ctx, tx, account.AccountID)
	if err != nil {
		return nil, err
	}
	acc := locked[account.AccountID]
	if !acc.IsActive() {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, acc.AccountNumber, acc.Status)
	}
	if acc.AvailableBalance.LessThan(req.Amount) {
		return nil, apperrors.NewInsufficientFundsError(acc.AccountNumber, req.Amount, acc.AvailableBalance, decimal.Zero)
	}

	now := time.Now().UTC()
	before := acc.Snapshot()
	acc.AvailableBalance = acc.AvailableBalance.Sub(req.Amount)
	acc.LockedAmount = acc.LockedAmount.Add(req.Amount)

	txn := newTransaction(domain.TypeLien, req.ExternalReference, req.Description, req.CurrencyCode, req.Amount, &acc, before, req.Metadata, actorID, now)

	if err := s.persistMutation(ctx, tx, txn, []domain.Account{acc}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, txn, req.WebhookURL, actorID)
	return &txn, nil
}

// releaseLienLocked performs the release leg against an already locked
// account and lien row: locked funds flow back to available, a lien_release
// transaction is written, and the lien gets its release pointer set.
func (s *transactionService) releaseLienLocked(ctx context.Context, tx pgx.Tx, lien *domain.Transaction, acc *domain.Account, description, actorID string, now time.Time) (*domain.Transaction, error) {
	if !lien.CanReleaseLien() {
		return nil, fmt.Errorf("%w: transaction %s is not a releasable lien", apperrors.ErrInvalidLienState, lien.TransactionID)
	}
	if acc.LockedAmount.LessThan(lien.Amount) {
		return nil, fmt.Errorf("%w: locked balance %s is below the lien amount %s", apperrors.ErrInvalidLienState, acc.LockedAmount.StringFixed(2), lien.Amount.StringFixed(2))
	}

	before := acc.Snapshot()
	acc.LockedAmount = acc.LockedAmount.Sub(lien.Amount)
	acc.AvailableBalance = acc.AvailableBalance.Add(lien.Amount)

	release := domain.Transaction{
		TransactionID:         uuid.NewString(),
		InternalReference:     domain.NewInternalReference(),
		ExternalReference:     "REL-" + lien.ExternalReference,
		Type:                  domain.TypeLienRelease,
		SourceAccountID:       acc.AccountID,
		CurrencyCode:          lien.CurrencyCode,
		Amount:                lien.Amount,
		Description:           description,
		Status:                domain.StatusCompleted,
		SourceBefore:          before,
		SourceAfter:           acc.Snapshot(),
		OriginalTransactionID: &lien.TransactionID,
		AuditFields:           domain.NewAuditFields(actorID, now),
	}

	if err := s.txnRepo.LinkReversalInTx(ctx, tx, lien.TransactionID, release.TransactionID, actorID, now); err != nil {
		return nil, err
	}
	return &release, nil
}

// ReleaseLien moves a lien's funds back from locked to available.
func (s *transactionService) ReleaseLien(ctx context.Context, req dto.ReleaseLienRequest, actorID string) (*domain.Transaction, error) {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	lien, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, req.LienTransactionID)
	if err != nil {
		return nil, err
	}

	locked, err := s.lockAccounts(ctx, tx, lien.SourceAccountID)
	if err != nil {
		return nil, err
	}
	acc := locked[lien.SourceAccountID]

	now := time.Now().UTC()
	release, err := s.releaseLienLocked(ctx, tx, lien, &acc, req.Description, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.persistMutation(ctx, tx, *release, []domain.Account{acc}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, *release, "", actorID)
	return release, nil
}

// ReleaseAndWithdraw releases a lien and withdraws the released amount in
// one atomic operation: one database transaction, one account lock, two
// transaction rows. Partial outcomes are impossible.
func (s *transactionService) ReleaseAndWithdraw(ctx context.Context, req dto.ReleaseAndWithdrawRequest, actorID string) (*domain.Transaction, error) {
	if err := s.checkIdempotency(ctx, req.ExternalReference); err != nil {
		return nil, err
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	lien, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, req.LienTransactionID)
	if err != nil {
		return nil, err
	}

	locked, err := s.lockAccounts(ctx, tx, lien.SourceAccountID)
	if err != nil {
		return nil, err
	}
	acc := locked[lien.SourceAccountID]

	now := time.Now().UTC()
	release, err := s.releaseLienLocked(ctx, tx, lien, &acc, req.Description, actorID, now)
	if err != nil {
		return nil, err
	}
	if err := s.persistMutation(ctx, tx, *release, nil, actorID); err != nil {
		return nil, err
	}

	// The withdrawal leg debits the just-released funds from the same
	// locked account state.
	before := acc.Snapshot()
	acc.LedgerBalance = acc.LedgerBalance.Sub(lien.Amount)
	acc.AvailableBalance = acc.AvailableBalance.Sub(lien.Amount)

	withdrawal := newTransaction(domain.TypeWithdrawal, req.ExternalReference, req.Description, lien.CurrencyCode, lien.Amount, &acc, before, map[string]any{
		"lien_transaction_id":    lien.TransactionID,
		"release_transaction_id": release.TransactionID,
	}, actorID, now)

	if err := s.persistMutation(ctx, tx, withdrawal, []domain.Account{acc}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, *release, "", actorID)
	s.finalize(ctx, withdrawal, req.WebhookURL, actorID)
	return &withdrawal, nil
}

// QueueReleaseLien validates the request, queues the release as a
// background job and returns its acknowledgement. The release still runs as
// one atomic database transaction inside the job; only the invocation is
// deferred. The outcome reaches the caller's webhook, keyed by job id.
func (s *transactionService) QueueReleaseLien(ctx context.Context, req dto.ReleaseLienRequest, actorID string) (*dto.JobAcceptedResponse, error) {
	lien, err := s.txnRepo.FindTransactionByID(ctx, req.LienTransactionID)
	if err != nil {
		return nil, err
	}
	if !lien.CanReleaseLien() {
		return nil, fmt.Errorf("%w: transaction %s is not a releasable lien", apperrors.ErrInvalidLienState, lien.TransactionID)
	}

	jobID := uuid.NewString()
	webhookURL := req.WebhookURL
	jobReq := req
	jobReq.WebhookURL = ""

	// completed survives across job retries so a release that already
	// committed is never re-executed just to redeliver its webhook.
	var completed *domain.Transaction
	s.runner.SubmitWithFailureHandler("release_lien",
		func(jobCtx context.Context) error {
			if completed == nil {
				release, err := s.ReleaseLien(jobCtx, jobReq, actorID)
				if err != nil {
					return err
				}
				completed = release
			}
			return s.webhookSvc.NotifyJobResult(jobCtx, jobID, completed, nil, webhookURL)
		},
		func(jobErr error) {
			_ = s.webhookSvc.NotifyJobResult(context.Background(), jobID, nil, jobErr, webhookURL)
		})

	ack := dto.NewJobAcceptedResponse(jobID)
	return &ack, nil
}

// QueueReleaseAndWithdraw queues the atomic release-and-withdraw as a
// background job and returns its acknowledgement. Idempotency and lien
// state are checked before the job is accepted so obvious rejections reach
// the caller synchronously.
func (s *transactionService) QueueReleaseAndWithdraw(ctx context.Context, req dto.ReleaseAndWithdrawRequest, actorID string) (*dto.JobAcceptedResponse, error) {
	if err := s.checkIdempotency(ctx, req.ExternalReference); err != nil {
		return nil, err
	}
	lien, err := s.txnRepo.FindTransactionByID(ctx, req.LienTransactionID)
	if err != nil {
		return nil, err
	}
	if !lien.CanReleaseLien() {
		return nil, fmt.Errorf("%w: transaction %s is not a releasable lien", apperrors.ErrInvalidLienState, lien.TransactionID)
	}

	jobID := uuid.NewString()
	webhookURL := req.WebhookURL
	jobReq := req
	jobReq.WebhookURL = ""

	var completed *domain.Transaction
	s.runner.SubmitWithFailureHandler("release_and_withdraw",
		func(jobCtx context.Context) error {
			if completed == nil {
				withdrawal, err := s.ReleaseAndWithdraw(jobCtx, jobReq, actorID)
				if errors.Is(err, apperrors.ErrDuplicate) {
					// A previous attempt committed but its outcome was
					// lost. Recover the withdrawal by its reference.
					withdrawal, err = s.txnRepo.FindTransactionByExternalReference(jobCtx, jobReq.ExternalReference)
				}
				if err != nil {
					return err
				}
				completed = withdrawal
			}
			return s.webhookSvc.NotifyJobResult(jobCtx, jobID, completed, nil, webhookURL)
		},
		func(jobErr error) {
			_ = s.webhookSvc.NotifyJobResult(context.Background(), jobID, nil, jobErr, webhookURL)
		})

	ack := dto.NewJobAcceptedResponse(jobID)
	return &ack, nil
}
