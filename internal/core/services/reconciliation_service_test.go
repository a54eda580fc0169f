package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
)

func bankTxn(id string, amount string) domain.BankTransaction {
	return domain.BankTransaction{BankTxnID: id, Amount: decimal.RequireFromString(amount)}
}

func debitPosting(id string, amount string) domain.Posting {
	return domain.Posting{PostingID: id, Debit: decimal.RequireFromString(amount), Credit: decimal.Zero}
}

func creditPosting(id string, amount string) domain.Posting {
	return domain.Posting{PostingID: id, Debit: decimal.Zero, Credit: decimal.RequireFromString(amount)}
}

func TestGreedyMatch_FirstMatchWins(t *testing.T) {
	txns := []domain.BankTransaction{
		bankTxn("t1", "-250.00"),
		bankTxn("t2", "-250.00"),
	}
	postings := []domain.Posting{
		debitPosting("p1", "250.00"),
		debitPosting("p2", "250.00"),
	}

	got := services.GreedyMatch(txns, postings)

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].PostingID)
	assert.Equal(t, "t1", got[0].BankTxnID)
	assert.Equal(t, "p2", got[1].PostingID)
	assert.Equal(t, "t2", got[1].BankTxnID)
}

func TestGreedyMatch_PostingNeverAssignedTwice(t *testing.T) {
	txns := []domain.BankTransaction{
		bankTxn("t1", "-100.00"),
		bankTxn("t2", "-100.00"),
		bankTxn("t3", "-100.00"),
	}
	postings := []domain.Posting{
		debitPosting("p1", "100.00"),
	}

	got := services.GreedyMatch(txns, postings)

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].BankTxnID)
	assert.Equal(t, "p1", got[0].PostingID)
}

func TestGreedyMatch_SignSelectsSide(t *testing.T) {
	// Money out matches a debit posting, money in a credit posting.
	txns := []domain.BankTransaction{
		bankTxn("out", "-80.00"),
		bankTxn("in", "80.00"),
	}
	postings := []domain.Posting{
		creditPosting("credit80", "80.00"),
		debitPosting("debit80", "80.00"),
	}

	got := services.GreedyMatch(txns, postings)

	require.Len(t, got, 2)
	assert.Equal(t, "debit80", got[0].PostingID)
	assert.Equal(t, "out", got[0].BankTxnID)
	assert.Equal(t, "credit80", got[1].PostingID)
	assert.Equal(t, "in", got[1].BankTxnID)
}

func TestGreedyMatch_Tolerance(t *testing.T) {
	txns := []domain.BankTransaction{
		bankTxn("t1", "-99.99"),
		bankTxn("t2", "-50.00"),
	}
	postings := []domain.Posting{
		debitPosting("near", "100.00"),  // off by 0.01, still a match
		debitPosting("far", "50.02"),    // off by 0.02, not a match
	}

	got := services.GreedyMatch(txns, postings)

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].BankTxnID)
	assert.Equal(t, "near", got[0].PostingID)
}

func TestGreedyMatch_ZeroAmountSkipped(t *testing.T) {
	txns := []domain.BankTransaction{
		bankTxn("zero", "0"),
	}
	postings := []domain.Posting{
		debitPosting("p1", "100.00"),
	}

	got := services.GreedyMatch(txns, postings)

	assert.Empty(t, got)
}

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockBankRepo    *MockBankRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReconciliationService(suite.mockBankRepo, suite.mockAccountRepo)
}

func (suite *ReconciliationServiceTestSuite) TestImportBankStatement_Empty() {
	ctx := context.Background()

	_, err := suite.service.ImportBankStatement(ctx, dto.ImportStatementRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyStatement)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "InsertTransactions", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestImportBankStatement_ReportsSkipped() {
	ctx := context.Background()
	req := dto.ImportStatementRequest{
		Transactions: []dto.BankTxnInput{
			{Date: time.Now(), Description: "wire", Amount: decimal.NewFromInt(-100), ExternalRef: "ref-1"},
			{Date: time.Now(), Description: "wire again", Amount: decimal.NewFromInt(-100), ExternalRef: "ref-1"},
		},
	}

	suite.mockBankRepo.On("InsertTransactions", ctx, mock.AnythingOfType("[]domain.BankTransaction")).
		Return(&domain.ImportResult{Imported: 1, Skipped: 1}, nil).Once()

	result, err := suite.service.ImportBankStatement(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)
	suite.Equal(1, result.Skipped)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SuggestMatches(ctx, "9999")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "ListUnlinkedTransactions", mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_Success() {
	ctx := context.Background()
	account := &domain.Account{Code: "1110", Nature: domain.DebitNature}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1110").Return(account, nil).Once()
	suite.mockBankRepo.On("ListUnlinkedTransactions", ctx).
		Return([]domain.BankTransaction{bankTxn("t1", "-42.00")}, nil).Once()
	suite.mockBankRepo.On("ListUnreconciledPostings", ctx, "1110").
		Return([]domain.Posting{debitPosting("p1", "42.00")}, nil).Once()

	got, err := suite.service.SuggestMatches(ctx, "1110")

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("t1", got[0].BankTxnID)
	suite.Equal("p1", got[0].PostingID)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_Conflict() {
	ctx := context.Background()

	suite.mockBankRepo.On("Reconcile", ctx, "p1", "t1").Return(apperrors.ErrConflict).Once()

	err := suite.service.Reconcile(ctx, "p1", "t1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReconciliationConflict)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
