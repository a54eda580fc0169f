package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestAddAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:   "1105",
		Name:   "Cash",
		Nature: "DEBIT",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.AddAccount(ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("1105", account.Code)
	suite.Equal(domain.DebitNature, account.Nature)
	// Class derived from leading digit when not supplied.
	suite.Equal(domain.ClassAsset, account.Class)
	suite.Equal("tester", account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAddAccount_ClassDerivation() {
	ctx := context.Background()
	cases := map[string]domain.AccountClass{
		"2205": domain.ClassLiability,
		"3105": domain.ClassEquity,
		"4135": domain.ClassRevenue,
		"5160": domain.ClassExpense,
		"6135": domain.ClassCostOfSales,
		"7105": domain.ClassCostOfSales,
	}

	for code, wantClass := range cases {
		suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

		account, err := suite.service.AddAccount(ctx, dto.CreateAccountRequest{
			Code: code, Name: "x", Nature: "CREDIT",
		}, "tester")

		suite.Require().NoError(err)
		suite.Equal(wantClass, account.Class, "code %s", code)
	}
}

func (suite *AccountServiceTestSuite) TestAddAccount_BadNature() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1105", Name: "Cash", Nature: "SIDEWAYS"}

	_, err := suite.service.AddAccount(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBadNature)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAddAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1105", Name: "Cash", Nature: "DEBIT"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.AddAccount(ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRemoveAccount_InUse() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteAccount", ctx, "1105").Return(apperrors.ErrConflict).Once()

	err := suite.service.RemoveAccount(ctx, "1105")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRemoveAccount_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteAccount", ctx, "9999").Return(apperrors.ErrNotFound).Once()

	err := suite.service.RemoveAccount(ctx, "9999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccount(ctx, "9999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
