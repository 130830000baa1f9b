package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bankman-core/bankman/internal/core/domain"
	portsrepo "github.com/bankman-core/bankman/internal/core/ports/repositories"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/dto"
)

// stubTx stands in for a database transaction handle. The services never
// touch the handle themselves; it only flows through to the mocked
// repositories.
type stubTx struct {
	pgx.Tx
}

// syncRunner executes submitted tasks inline, once, so post-commit work is
// observable within the test. A task error invokes the failure handler the
// way an exhausted retry budget would.
type syncRunner struct{}

func (r *syncRunner) Submit(name string, fn func(ctx context.Context) error) {
	r.SubmitWithFailureHandler(name, fn, nil)
}

func (r *syncRunner) SubmitWithFailureHandler(name string, fn func(ctx context.Context) error, onFailure func(err error)) {
	if err := fn(context.Background()); err != nil && onFailure != nil {
		onFailure(err)
	}
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveBalanceHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.AccountBalanceHistory) error {
	args := m.Called(ctx, tx, history)
	return args.Error(0)
}

func (m *MockAccountRepository) ListBalanceHistory(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountBalanceHistory, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AccountBalanceHistory), returnedNextToken, args.Error(2)
}

func (m *MockAccountRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByExternalReference(ctx context.Context, externalReference string) (*domain.Transaction, error) {
	args := m.Called(ctx, externalReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalTransactionID, reversalTransactionID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, originalTransactionID, reversalTransactionID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByReference(ctx context.Context, referenceID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) VoidEntryInTx(ctx context.Context, tx pgx.Tx, entryID, reason, voidedBy string, voidedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, reason, voidedBy, voidedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindGLAccountByID(ctx context.Context, glAccountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockJournalRepository) FindGLAccountByCode(ctx context.Context, accountCode string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockJournalRepository) ApplyGLBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, deltas, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ChargeRepository ---
type MockChargeRepository struct {
	mock.Mock
}

var _ portsrepo.ChargeRepositoryFacade = (*MockChargeRepository)(nil)

func (m *MockChargeRepository) FindChargeByID(ctx context.Context, chargeID string) (*domain.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindActiveChargesByType(ctx context.Context, txnType domain.TransactionType) ([]domain.Charge, error) {
	args := m.Called(ctx, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindAccountChargeBindings(ctx context.Context, accountID string) ([]domain.AccountChargeBinding, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountChargeBinding), args.Error(1)
}

// --- Mock AggregateRepository ---
type MockAggregateRepository struct {
	mock.Mock
}

var _ portsrepo.AggregateRepositoryFacade = (*MockAggregateRepository)(nil)

func (m *MockAggregateRepository) FindAggregate(ctx context.Context, accountID string, date time.Time) (*domain.TransactionAggregate, error) {
	args := m.Called(ctx, accountID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionAggregate), args.Error(1)
}

func (m *MockAggregateRepository) UpsertAggregate(ctx context.Context, accountID string, date time.Time, total, collections, disbursements decimal.Decimal) (*domain.TransactionAggregate, error) {
	args := m.Called(ctx, accountID, date, total, collections, disbursements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionAggregate), args.Error(1)
}

// --- Mock WebhookRepository ---
type MockWebhookRepository struct {
	mock.Mock
}

var _ portsrepo.WebhookRepositoryFacade = (*MockWebhookRepository)(nil)

func (m *MockWebhookRepository) FindEventByWebhookID(ctx context.Context, webhookID string) (*domain.WebhookEvent, error) {
	args := m.Called(ctx, webhookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) UpsertEvent(ctx context.Context, event domain.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock JournalPoster ---
type MockJournalPoster struct {
	mock.Mock
}

var _ portssvc.JournalPosterSvc = (*MockJournalPoster)(nil)

func (m *MockJournalPoster) PostForTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, txn, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ChargeService ---
type MockChargeService struct {
	mock.Mock
}

var _ portssvc.ChargeSvcFacade = (*MockChargeService)(nil)

func (m *MockChargeService) ResolveCharges(ctx context.Context, accountID string, txnType domain.TransactionType, amount decimal.Decimal, at time.Time) ([]portssvc.CalculatedCharge, error) {
	args := m.Called(ctx, accountID, txnType, amount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portssvc.CalculatedCharge), args.Error(1)
}

func (m *MockChargeService) PreviewCharges(ctx context.Context, req dto.ChargePreviewRequest) (*dto.ChargePreviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChargePreviewResponse), args.Error(1)
}

func (m *MockChargeService) ApplyCharges(ctx context.Context, originalTxn domain.Transaction, actorID string) error {
	args := m.Called(ctx, originalTxn, actorID)
	return args.Error(0)
}

// --- Mock AggregateService ---
type MockAggregateService struct {
	mock.Mock
}

var _ portssvc.AggregateSvcFacade = (*MockAggregateService)(nil)

func (m *MockAggregateService) RecordTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockAggregateService) GetDailyAggregate(ctx context.Context, accountID string, date time.Time) (*dto.DailyAggregateResponse, error) {
	args := m.Called(ctx, accountID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DailyAggregateResponse), args.Error(1)
}

func (m *MockAggregateService) DailyDisbursements(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock WebhookNotifier ---
type MockWebhookNotifier struct {
	mock.Mock
}

var _ portssvc.WebhookNotifierSvc = (*MockWebhookNotifier)(nil)

func (m *MockWebhookNotifier) NotifyTransaction(ctx context.Context, txn domain.Transaction, url string) error {
	args := m.Called(ctx, txn, url)
	return args.Error(0)
}

func (m *MockWebhookNotifier) NotifyJobResult(ctx context.Context, jobID string, txn *domain.Transaction, jobErr error, url string) error {
	args := m.Called(ctx, jobID, txn, jobErr, url)
	return args.Error(0)
}

func (m *MockWebhookNotifier) Deliver(ctx context.Context, event domain.WebhookEvent) (*domain.WebhookEvent, bool, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Bool(1), args.Error(2)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisherSvc = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishStatusChange(ctx context.Context, event domain.TransactionStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock AggregateRecorder ---
type MockAggregateRecorder struct {
	mock.Mock
}

var _ portssvc.AggregateRecorderSvc = (*MockAggregateRecorder)(nil)

func (m *MockAggregateRecorder) RecordTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}
