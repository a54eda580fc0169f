package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
}

func (suite *JournalServiceTestSuite) knownAccounts(codes ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		accounts[code] = domain.Account{Code: code, Name: "acct " + code, Nature: domain.DebitNature}
	}
	return accounts
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Office supplies",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.NewFromInt(250)},
			{AccountCode: "1110", Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195", "1110"), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.Posting")).
		Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EntryManual, entry.Type)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(250)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(250)))
	suite.Equal("tester", entry.ActorID)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_ToleranceAccepted() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Rounding residue",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.RequireFromString("100.00")},
			{AccountCode: "1110", Credit: decimal.RequireFromString("99.99")},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195", "1110"), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().NoError(err)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Imbalanced() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Off by too much",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.RequireFromString("100.00")},
			{AccountCode: "1110", Credit: decimal.RequireFromString("99.98")},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195", "1110"), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrImbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_EmptyPostings() {
	ctx := context.Background()
	req := dto.PostEntryRequest{Date: time.Now(), Description: "nothing", Postings: []dto.PostingInput{}}

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoPostings)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Bad account",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.NewFromInt(10)},
			{AccountCode: "9999", Credit: decimal.NewFromInt(10)},
		},
	}

	// Only 5195 exists.
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195"), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.Contains(err.Error(), "9999")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_BothSidesSet() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Both sides",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
			{AccountCode: "1110", Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195", "1110"), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMixedPosting)
}

func (suite *JournalServiceTestSuite) TestPostEntry_NegativeAmountRejected() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		Date:        time.Now(),
		Description: "Negative line",
		Postings: []dto.PostingInput{
			{AccountCode: "5195", Debit: decimal.NewFromInt(-10)},
			{AccountCode: "1110", Credit: decimal.NewFromInt(-10)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.AnythingOfType("[]string")).
		Return(suite.knownAccounts("5195", "1110"), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMixedPosting)
}

func (suite *JournalServiceTestSuite) TestGetEntry_LoadsPostings() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: "e1", Description: "test"}
	postings := []domain.Posting{{PostingID: "p1", EntryID: "e1"}}

	suite.mockJournalRepo.On("FindEntryByID", ctx, "e1").Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindPostingsByEntryID", ctx, "e1").Return(postings, nil).Once()

	got, err := suite.service.GetEntry(ctx, "e1")

	suite.Require().NoError(err)
	suite.Len(got.Postings, 1)
}

func (suite *JournalServiceTestSuite) TestVoidEntry_AlreadyVoided() {
	ctx := context.Background()

	suite.mockJournalRepo.On("VoidEntry", ctx, "e1", "tester", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.VoidEntry(ctx, "e1", "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyVoided)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
