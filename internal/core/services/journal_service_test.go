package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankman-core/bankman/internal/apperrors"
	"github.com/bankman-core/bankman/internal/core/domain"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/core/services"
)

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalRepository
	service     portssvc.JournalSvcFacade
	ctx         context.Context
	tx          stubTx
	actorID     string

	cash     domain.GLAccount
	deposits domain.GLAccount
	fees     domain.GLAccount
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.journalRepo = new(MockJournalRepository)
	s.service = services.NewJournalService(s.journalRepo, services.DefaultGLMapping())
	s.ctx = context.Background()
	s.tx = stubTx{}
	s.actorID = uuid.NewString()

	s.cash = domain.GLAccount{
		GLAccountID: uuid.NewString(),
		AccountCode: "101200",
		Name:        "Bank Account - Operations",
		Type:        domain.GLAsset,
		IsActive:    true,
	}
	s.deposits = domain.GLAccount{
		GLAccountID: uuid.NewString(),
		AccountCode: "201100",
		Name:        "Current Accounts",
		Type:        domain.GLLiability,
		IsActive:    true,
	}
	s.fees = domain.GLAccount{
		GLAccountID: uuid.NewString(),
		AccountCode: "401100",
		Name:        "Transaction Fees",
		Type:        domain.GLIncome,
		IsActive:    true,
	}
}

func (s *JournalServiceTestSuite) newTxn(txnType domain.TransactionType, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		InternalReference: domain.NewInternalReference(),
		Type:              txnType,
		SourceAccountID:   uuid.NewString(),
		CurrencyCode:      "AED",
		Amount:            decimal.NewFromInt(amount),
		Description:       "test movement",
		Status:            domain.StatusCompleted,
	}
}

func (s *JournalServiceTestSuite) TestPostForTransaction_Deposit() {
	txn := s.newTxn(domain.TypeDeposit, 100)

	s.journalRepo.On("FindGLAccountByCode", s.ctx, "101200").Return(&s.cash, nil).Once()
	s.journalRepo.On("FindGLAccountByCode", s.ctx, "201100").Return(&s.deposits, nil).Once()

	var saved domain.JournalEntry
	s.journalRepo.On("SaveEntryInTx", s.ctx, s.tx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.JournalEntry) }).
		Return(nil).Once()

	s.journalRepo.On("FindGLAccountByID", s.ctx, s.cash.GLAccountID).Return(&s.cash, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()

	// A deposit grows both cash (asset, debit) and customer deposits
	// (liability, credit) by the full amount.
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 2 &&
			deltas[s.cash.GLAccountID].Equal(decimal.NewFromInt(100)) &&
			deltas[s.deposits.GLAccountID].Equal(decimal.NewFromInt(100))
	}), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(txn.TransactionID, entry.ReferenceID)
	s.Equal(domain.TypeDeposit, entry.ReferenceType)
	s.Equal(domain.EntryPosted, entry.Status)
	s.True(strings.HasPrefix(entry.EntryNumber, "JE-"))
	s.Require().Len(entry.Items, 2)
	s.Equal(s.cash.GLAccountID, entry.Items[0].GLAccountID)
	s.True(entry.Items[0].DebitAmount.Equal(decimal.NewFromInt(100)))
	s.Equal(s.deposits.GLAccountID, entry.Items[1].GLAccountID)
	s.True(entry.Items[1].CreditAmount.Equal(decimal.NewFromInt(100)))
	s.True(entry.IsBalanced())
	s.Equal(entry.EntryID, saved.EntryID)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostForTransaction_Withdrawal() {
	txn := s.newTxn(domain.TypeWithdrawal, 60)

	s.journalRepo.On("FindGLAccountByCode", s.ctx, "201100").Return(&s.deposits, nil).Once()
	s.journalRepo.On("FindGLAccountByCode", s.ctx, "101200").Return(&s.cash, nil).Once()
	s.journalRepo.On("SaveEntryInTx", s.ctx, s.tx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.cash.GLAccountID).Return(&s.cash, nil).Once()

	// A withdrawal shrinks both sides by the full amount.
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[s.deposits.GLAccountID].Equal(decimal.NewFromInt(-60)) &&
			deltas[s.cash.GLAccountID].Equal(decimal.NewFromInt(-60))
	}), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().NoError(err)
	s.Require().Len(entry.Items, 2)
	s.Equal(s.deposits.GLAccountID, entry.Items[0].GLAccountID)
	s.True(entry.Items[0].DebitAmount.Equal(decimal.NewFromInt(60)))
	s.Equal(s.cash.GLAccountID, entry.Items[1].GLAccountID)
	s.True(entry.Items[1].CreditAmount.Equal(decimal.NewFromInt(60)))
}

func (s *JournalServiceTestSuite) TestPostForTransaction_ChargeOverridesIncomeAccount() {
	customIncome := domain.GLAccount{
		GLAccountID: uuid.NewString(),
		AccountCode: "401250",
		Name:        "Transfer Fees",
		Type:        domain.GLIncome,
		IsActive:    true,
	}
	txn := s.newTxn(domain.TypeCharge, 5)
	txn.Metadata = map[string]any{"gl_income_account_id": customIncome.GLAccountID}

	s.journalRepo.On("FindGLAccountByCode", s.ctx, "201100").Return(&s.deposits, nil).Once()
	s.journalRepo.On("SaveEntryInTx", s.ctx, s.tx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, customIncome.GLAccountID).Return(&customIncome, nil).Once()
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[s.deposits.GLAccountID].Equal(decimal.NewFromInt(-5)) &&
			deltas[customIncome.GLAccountID].Equal(decimal.NewFromInt(5))
	}), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().NoError(err)
	s.Equal(customIncome.GLAccountID, entry.Items[1].GLAccountID)
	s.journalRepo.AssertNotCalled(s.T(), "FindGLAccountByCode", s.ctx, "401100")
}

func (s *JournalServiceTestSuite) TestPostForTransaction_ChargeDefaultsToFeeIncome() {
	txn := s.newTxn(domain.TypeCharge, 5)

	s.journalRepo.On("FindGLAccountByCode", s.ctx, "201100").Return(&s.deposits, nil).Once()
	s.journalRepo.On("FindGLAccountByCode", s.ctx, "401100").Return(&s.fees, nil).Once()
	s.journalRepo.On("SaveEntryInTx", s.ctx, s.tx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.fees.GLAccountID).Return(&s.fees, nil).Once()
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.Anything, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().NoError(err)
	s.Equal(s.fees.GLAccountID, entry.Items[1].GLAccountID)
}

func (s *JournalServiceTestSuite) TestPostForTransaction_LienProducesNoEntry() {
	for _, txnType := range []domain.TransactionType{domain.TypeLien, domain.TypeLienRelease} {
		entry, err := s.service.PostForTransaction(s.ctx, s.tx, s.newTxn(txnType, 10), s.actorID)
		s.NoError(err)
		s.Nil(entry)
	}
	s.journalRepo.AssertNotCalled(s.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostForTransaction_ReversalMirrorsOriginal() {
	originalTxnID := uuid.NewString()
	originalEntry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		ReferenceID: originalTxnID,
		Items: []domain.JournalEntryItem{
			{ItemID: uuid.NewString(), GLAccountID: s.cash.GLAccountID, DebitAmount: decimal.NewFromInt(100)},
			{ItemID: uuid.NewString(), GLAccountID: s.deposits.GLAccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
	txn := s.newTxn(domain.TypeReversal, 100)
	txn.OriginalTransactionID = &originalTxnID

	s.journalRepo.On("FindEntryByReference", s.ctx, originalTxnID).Return(&originalEntry, nil).Once()
	s.journalRepo.On("SaveEntryInTx", s.ctx, s.tx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.cash.GLAccountID).Return(&s.cash, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return deltas[s.cash.GLAccountID].Equal(decimal.NewFromInt(-100)) &&
			deltas[s.deposits.GLAccountID].Equal(decimal.NewFromInt(-100))
	}), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().NoError(err)
	s.Require().Len(entry.Items, 2)
	// Debit and credit swap sides.
	s.Equal(s.cash.GLAccountID, entry.Items[0].GLAccountID)
	s.True(entry.Items[0].CreditAmount.Equal(decimal.NewFromInt(100)))
	s.True(entry.Items[0].DebitAmount.IsZero())
	s.Equal(s.deposits.GLAccountID, entry.Items[1].GLAccountID)
	s.True(entry.Items[1].DebitAmount.Equal(decimal.NewFromInt(100)))
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostForTransaction_ReversalWithoutOriginal() {
	txn := s.newTxn(domain.TypeReversal, 100)

	entry, err := s.service.PostForTransaction(s.ctx, s.tx, txn, s.actorID)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestGetEntryForTransaction() {
	transactionID := uuid.NewString()
	expected := domain.JournalEntry{EntryID: uuid.NewString(), ReferenceID: transactionID}
	s.journalRepo.On("FindEntryByReference", s.ctx, transactionID).Return(&expected, nil).Once()

	entry, err := s.service.GetEntryForTransaction(s.ctx, transactionID)

	s.Require().NoError(err)
	s.Equal(expected.EntryID, entry.EntryID)
}

func (s *JournalServiceTestSuite) postedEntry() *domain.JournalEntry {
	now := time.Now().UTC()
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:       entryID,
		EntryNumber:   "JE-20260831-ABCD1234",
		EntryDate:     now,
		ReferenceType: domain.TypeDeposit,
		ReferenceID:   uuid.NewString(),
		CurrencyCode:  "AED",
		Status:        domain.EntryPosted,
		PostedBy:      uuid.NewString(),
		PostedAt:      &now,
		Items: []domain.JournalEntryItem{
			{ItemID: uuid.NewString(), EntryID: entryID, GLAccountID: s.cash.GLAccountID, DebitAmount: decimal.NewFromInt(100)},
			{ItemID: uuid.NewString(), EntryID: entryID, GLAccountID: s.deposits.GLAccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

func (s *JournalServiceTestSuite) TestVoidEntry_Success() {
	entry := s.postedEntry()
	reason := "posted against the wrong account"

	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.cash.GLAccountID).Return(&s.cash, nil).Once()
	s.journalRepo.On("FindGLAccountByID", s.ctx, s.deposits.GLAccountID).Return(&s.deposits, nil).Once()
	s.journalRepo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.journalRepo.On("Rollback", s.ctx, s.tx).Return(nil).Maybe()
	s.journalRepo.On("VoidEntryInTx", s.ctx, s.tx, entry.EntryID, reason, s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	// The deposit originally grew cash and customer deposits by 100 each;
	// the void backs both out.
	s.journalRepo.On("ApplyGLBalanceDeltasInTx", s.ctx, s.tx, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 2 &&
			deltas[s.cash.GLAccountID].Equal(decimal.NewFromInt(-100)) &&
			deltas[s.deposits.GLAccountID].Equal(decimal.NewFromInt(-100))
	}), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.journalRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	voided, err := s.service.VoidEntry(s.ctx, entry.EntryID, reason, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(voided)
	s.Equal(domain.EntryVoided, voided.Status)
	s.Equal(reason, voided.VoidReason)
	s.Equal(s.actorID, voided.VoidedBy)
	s.Require().NotNil(voided.VoidedAt)
	// The original items stay untouched as the record of what was posted.
	s.Len(voided.Items, 2)
	s.journalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestVoidEntry_OnlyPostedEntries() {
	entry := s.postedEntry()
	entry.Status = domain.EntryVoided

	s.journalRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()

	voided, err := s.service.VoidEntry(s.ctx, entry.EntryID, "duplicate posting", s.actorID)

	s.Require().Error(err)
	s.Nil(voided)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.journalRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
	s.journalRepo.AssertNotCalled(s.T(), "VoidEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestVoidEntry_ReasonRequired() {
	voided, err := s.service.VoidEntry(s.ctx, uuid.NewString(), "", s.actorID)

	s.Require().Error(err)
	s.Nil(voided)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.journalRepo.AssertNotCalled(s.T(), "FindEntryByID", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
