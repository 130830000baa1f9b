package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
	"github.com/bankman-core/bankman/internal/middleware"
)

// TaskRunner dispatches work that must happen after a transaction commits
// but outside its database transaction. Failed tasks are retried with
// backoff up to the runner's attempt bound; permanent failures are recorded
// and, when a handler is given, reported back to the submitter.
type TaskRunner interface {
	Submit(name string, fn func(ctx context.Context) error)
	SubmitWithFailureHandler(name string, fn func(ctx context.Context) error, onFailure func(err error))
}

// transactionService is the engine behind every balance mutation. Each
// operation locks the affected account rows, mutates the balance triplet,
// persists the transaction with before and after snapshots, and posts the
// matching journal entry, all inside one database transaction. Charges,
// aggregates, webhooks and status events run after commit.
type transactionService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	txnRepo      portsrepo.TransactionRepositoryWithTx
	journalSvc   portssvc.JournalPosterSvc
	chargeSvc    portssvc.ChargeSvcFacade
	aggregateSvc portssvc.AggregateSvcFacade
	webhookSvc   portssvc.WebhookNotifierSvc
	events       portssvc.EventPublisherSvc
	runner       TaskRunner
}

// NewTransactionService creates the transaction engine.
func NewTransactionService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryWithTx,
	journalSvc portssvc.JournalPosterSvc,
	chargeSvc portssvc.ChargeSvcFacade,
	aggregateSvc portssvc.AggregateSvcFacade,
	webhookSvc portssvc.WebhookNotifierSvc,
	events portssvc.EventPublisherSvc,
	runner TaskRunner,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		journalSvc:   journalSvc,
		chargeSvc:    chargeSvc,
		aggregateSvc: aggregateSvc,
		webhookSvc:   webhookSvc,
		events:       events,
		runner:       runner,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// checkIdempotency rejects a request whose external reference was already
// processed.
func (s *transactionService) checkIdempotency(ctx context.Context, externalReference string) error {
	existing, err := s.txnRepo.FindTransactionByExternalReference(ctx, externalReference)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: transaction with reference %s already processed", apperrors.ErrDuplicate, externalReference)
	}
	return nil
}

// lockAccounts locks the given accounts for update inside tx and returns
// them keyed by id.
func (s *transactionService) lockAccounts(ctx context.Context, tx pgx.Tx, accountIDs ...string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
}

// validateDebit runs the debit validation chain against a locked account:
// status, amount, product minimum, single transaction limit, daily limit,
// then funds. The funds check covers amount plus the fees the charge engine
// would levy for txnType, against available balance and overdraft headroom.
func (s *transactionService) validateDebit(ctx context.Context, account *domain.Account, amount decimal.Decimal, txnType domain.TransactionType, checkProductLimits bool) error {
	if !account.IsActive() {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrAccountNotActive, account.AccountNumber, account.Status)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var product *domain.Product
	if checkProductLimits {
		var err error
		product, err = s.accountRepo.FindProductByID(ctx, account.ProductID)
		if err != nil {
			return err
		}
		if product.MinimumWithdrawalAmount.IsPositive() && amount.LessThan(product.MinimumWithdrawalAmount) {
			return apperrors.NewLimitExceededError(apperrors.LimitMinimumAmount, product.MinimumWithdrawalAmount, amount)
		}
	}
	if account.SingleTransactionLimit.IsPositive() && amount.GreaterThan(account.SingleTransactionLimit) {
		return apperrors.NewLimitExceededError(apperrors.LimitSingleTransaction, account.SingleTransactionLimit, amount)
	}
	if product != nil && product.DailyTransactionLimit.IsPositive() {
		disbursed, err := s.aggregateSvc.DailyDisbursements(ctx, account.AccountID, time.Now().UTC())
		if err != nil {
			return err
		}
		if disbursed.Add(amount).GreaterThan(product.DailyTransactionLimit) {
			return apperrors.NewLimitExceededError(apperrors.LimitDaily, product.DailyTransactionLimit, disbursed.Add(amount))
		}
	}

	fees, err := s.feeTotal(ctx, account.AccountID, txnType, amount)
	if err != nil {
		return err
	}

	required := amount.Add(fees)
	usable := account.AvailableBalance.Add(account.AvailableOverdraft())
	if required.GreaterThan(usable) {
		fundsErr := apperrors.NewInsufficientFundsError(account.AccountNumber, required, account.AvailableBalance, account.OverdraftLimit)
		fundsErr.Charges = fees
		return fundsErr
	}
	return nil
}

// feeTotal sums the fees the charge engine would levy on this debit. The
// funds check must hold back enough headroom that applying the charges
// after commit cannot fail for want of balance.
func (s *transactionService) feeTotal(ctx context.Context, accountID string, txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	resolved, err := s.chargeSvc.ResolveCharges(ctx, accountID, txnType, amount, time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, calc := range resolved {
		total = total.Add(calc.Amount)
	}
	return total, nil
}

// persistMutation writes the new balances, the history row and the
// transaction itself inside tx, then posts the journal entry.
func (s *transactionService) persistMutation(ctx context.Context, tx pgx.Tx, txn domain.Transaction, accounts []domain.Account, actorID string) error {
	now := txn.CreatedAt
	for i := range accounts {
		accounts[i].LastUpdatedAt = now
		accounts[i].LastUpdatedBy = actorID
		if !accounts[i].BalancesConsistent() {
			return fmt.Errorf("%w: balance triplet inconsistent for account %s", apperrors.ErrInternal, accounts[i].AccountID)
		}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, accounts[i]); err != nil {
			return err
		}
		if err := s.accountRepo.SaveBalanceHistoryInTx(ctx, tx, domain.AccountBalanceHistory{
			HistoryID:     uuid.NewString(),
			AccountID:     accounts[i].AccountID,
			TransactionID: txn.TransactionID,
			Balances:      accounts[i].Snapshot(),
			BalanceDate:   now,
		}); err != nil {
			return err
		}
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}

	if _, err := s.journalSvc.PostForTransaction(ctx, tx, txn, actorID); err != nil {
		return err
	}
	return nil
}

// finalize dispatches the post-commit work for a completed transaction:
// fees, daily aggregates, the status event and the caller's webhook. All of
// it is at-least-once and never affects the committed mutation.
func (s *transactionService) finalize(ctx context.Context, txn domain.Transaction, webhookURL string, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	chargeable := txn.Type == domain.TypeDeposit || txn.Type == domain.TypeWithdrawal || txn.Type == domain.TypeTransfer
	if chargeable {
		s.runner.Submit("apply_charges", func(jobCtx context.Context) error {
			return s.chargeSvc.ApplyCharges(jobCtx, txn, actorID)
		})
	}

	s.runner.Submit("record_aggregate", func(jobCtx context.Context) error {
		return s.aggregateSvc.RecordTransaction(jobCtx, txn)
	})

	s.runner.Submit("publish_status", func(jobCtx context.Context) error {
		return s.events.PublishStatusChange(jobCtx, domain.StatusEventFromTransaction(txn))
	})

	if webhookURL != "" {
		if err := s.webhookSvc.NotifyTransaction(ctx, txn, webhookURL); err != nil {
			logger.Error("failed to schedule webhook", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		}
	}
}

// newTransaction assembles a completed transaction row with its snapshots.
func newTransaction(txnType domain.TransactionType, externalReference, description, currencyCode string, amount decimal.Decimal, source *domain.Account, sourceBefore domain.BalanceSnapshot, metadata map[string]any, actorID string, now time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		InternalReference: domain.NewInternalReference(),
		ExternalReference: externalReference,
		Type:              txnType,
		SourceAccountID:   source.AccountID,
		CurrencyCode:      currencyCode,
		Amount:            amount,
		Description:       description,
		Status:            domain.StatusCompleted,
		SourceBefore:      sourceBefore,
		SourceAfter:       source.Snapshot(),
		Metadata:          metadata,
		AuditFields:       domain.NewAuditFields(actorID, now),
	}
}

// ProcessDeposit credits an account.
func (s *transactionService) ProcessDeposit(ctx context.Context, req dto.DepositRequest, actorID string) (*domain.Transaction, error) {
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

	now := time.Now().UTC()
	before := acc.Snapshot()
	acc.LedgerBalance = acc.LedgerBalance.Add(req.Amount)
	acc.AvailableBalance = acc.AvailableBalance.Add(req.Amount)

	txn := newTransaction(domain.TypeDeposit, req.ExternalReference, req.Description, req.CurrencyCode, req.Amount, &acc, before, req.Metadata, actorID, now)

	if err := s.persistMutation(ctx, tx, txn, []domain.Account{acc}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, txn, req.WebhookURL, actorID)
	return &txn, nil
}

// ProcessWithdrawal debits an account after the full validation chain.
func (s *transactionService) ProcessWithdrawal(ctx context.Context, req dto.WithdrawalRequest, actorID string) (*domain.Transaction, error) {
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

	if err := s.validateDebit(ctx, &acc, req.Amount, domain.TypeWithdrawal, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	before := acc.Snapshot()
	acc.LedgerBalance = acc.LedgerBalance.Sub(req.Amount)
	acc.AvailableBalance = acc.AvailableBalance.Sub(req.Amount)

	txn := newTransaction(domain.TypeWithdrawal, req.ExternalReference, req.Description, req.CurrencyCode, req.Amount, &acc, before, req.Metadata, actorID, now)

	if err := s.persistMutation(ctx, tx, txn, []domain.Account{acc}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, txn, req.WebhookURL, actorID)
	return &txn, nil
}

// ProcessTransfer moves funds between two accounts atomically. Both rows are
// locked in one statement, in ascending id order, so opposing transfers
// cannot deadlock.
func (s *transactionService) ProcessTransfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.Transaction, error) {
	if req.SourceAccountNumber == req.DestinationAccountNumber {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	if err := s.checkIdempotency(ctx, req.ExternalReference); err != nil {
		return nil, err
	}

	source, err := s.accountRepo.FindAccountByNumber(ctx, req.SourceAccountNumber)
	if err != nil {
		return nil, err
	}
	destination, err := s.accountRepo.FindAccountByNumber(ctx, req.DestinationAccountNumber)
	if err != nil {
		return nil, err
	}
	if source.CurrencyCode != req.CurrencyCode || destination.CurrencyCode != req.CurrencyCode {
		return nil, fmt.Errorf("%w: both accounts must hold currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	locked, err := s.lockAccounts(ctx, tx, source.AccountID, destination.AccountID)
	if err != nil {
		return nil, err
	}
	src := locked[source.AccountID]
	dst := locked[destination.AccountID]

	if err := s.validateDebit(ctx, &src, req.Amount, domain.TypeTransfer, false); err != nil {
		return nil, err
	}
	if !dst.IsActive() {
		return nil, fmt.Errorf("%w: destination account %s is %s", apperrors.ErrAccountNotActive, dst.AccountNumber, dst.Status)
	}

	now := time.Now().UTC()
	srcBefore := src.Snapshot()
	dstBefore := dst.Snapshot()

	src.LedgerBalance = src.LedgerBalance.Sub(req.Amount)
	src.AvailableBalance = src.AvailableBalance.Sub(req.Amount)
	dst.LedgerBalance = dst.LedgerBalance.Add(req.Amount)
	dst.AvailableBalance = dst.AvailableBalance.Add(req.Amount)

	txn := newTransaction(domain.TypeTransfer, req.ExternalReference, req.Description, req.CurrencyCode, req.Amount, &src, srcBefore, req.Metadata, actorID, now)
	txn.DestinationAccountID = &dst.AccountID
	txn.DestinationBefore = &dstBefore
	dstAfter := dst.Snapshot()
	txn.DestinationAfter = &dstAfter

	if err := s.persistMutation(ctx, tx, txn, []domain.Account{src, dst}, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, txn, req.WebhookURL, actorID)
	return &txn, nil
}

// CreateReversal creates and applies the compensating transaction for a
// completed transaction. The original row is locked so at most one reversal
// can ever be linked.
func (s *transactionService) CreateReversal(ctx context.Context, transactionID string, req dto.ReversalRequest, actorID string) (*domain.Transaction, error) {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx) //nolint:errcheck

	original, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Type == domain.TypeLien || original.Type == domain.TypeLienRelease {
		return nil, fmt.Errorf("%w: liens are released, not reversed", apperrors.ErrInvalidLienState)
	}
	if !original.IsReversible() {
		return nil, fmt.Errorf("%w: transaction %s cannot be reversed", apperrors.ErrConflict, transactionID)
	}

	accountIDs := []string{original.SourceAccountID}
	if original.DestinationAccountID != nil {
		accountIDs = append(accountIDs, *original.DestinationAccountID)
	}
	locked, err := s.lockAccounts(ctx, tx, accountIDs...)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	src := locked[original.SourceAccountID]
	srcBefore := src.Snapshot()
	amount := original.Amount

	var mutated []domain.Account
	reversal := domain.Transaction{
		TransactionID:         uuid.NewString(),
		InternalReference:     domain.NewInternalReference(),
		ExternalReference:     "REV-" + original.ExternalReference,
		Type:                  domain.TypeReversal,
		SourceAccountID:       original.SourceAccountID,
		DestinationAccountID:  original.DestinationAccountID,
		CurrencyCode:          original.CurrencyCode,
		Amount:                amount,
		Description:           req.Reason,
		Status:                domain.StatusCompleted,
		OriginalTransactionID: &original.TransactionID,
		Metadata: map[string]any{
			"reason":                      req.Reason,
			"original_internal_reference": original.InternalReference,
		},
		AuditFields: domain.NewAuditFields(actorID, now),
	}

	switch original.Type {
	case domain.TypeDeposit:
		if src.AvailableBalance.LessThan(amount) {
			return nil, apperrors.NewInsufficientFundsError(src.AccountNumber, amount, src.AvailableBalance, decimal.Zero)
		}
		src.LedgerBalance = src.LedgerBalance.Sub(amount)
		src.AvailableBalance = src.AvailableBalance.Sub(amount)
		mutated = []domain.Account{src}

	case domain.TypeWithdrawal, domain.TypeCharge:
		src.LedgerBalance = src.LedgerBalance.Add(amount)
		src.AvailableBalance = src.AvailableBalance.Add(amount)
		mutated = []domain.Account{src}

	case domain.TypeTransfer:
		dst := locked[*original.DestinationAccountID]
		if dst.AvailableBalance.LessThan(amount) {
			return nil, apperrors.NewInsufficientFundsError(dst.AccountNumber, amount, dst.AvailableBalance, decimal.Zero)
		}
		dstBefore := dst.Snapshot()
		src.LedgerBalance = src.LedgerBalance.Add(amount)
		src.AvailableBalance = src.AvailableBalance.Add(amount)
		dst.LedgerBalance = dst.LedgerBalance.Sub(amount)
		dst.AvailableBalance = dst.AvailableBalance.Sub(amount)
		reversal.DestinationBefore = &dstBefore
		dstAfter := dst.Snapshot()
		reversal.DestinationAfter = &dstAfter
		mutated = []domain.Account{src, dst}

	default:
		return nil, fmt.Errorf("%w: transaction type %s cannot be reversed", apperrors.ErrValidation, original.Type)
	}

	reversal.SourceBefore = srcBefore
	reversal.SourceAfter = mutated[0].Snapshot()

	if err := s.txnRepo.LinkReversalInTx(ctx, tx, original.TransactionID, reversal.TransactionID, actorID, now); err != nil {
		return nil, err
	}
	if err := s.persistMutation(ctx, tx, reversal, mutated, actorID); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.finalize(ctx, reversal, "", actorID)
	return &reversal, nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactionsByAccount retrieves a paginated statement for an account.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountNumber string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, account.AccountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
