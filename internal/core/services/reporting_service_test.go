package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (suite *ReportingServiceTestSuite) TestComputeTrialBalance_SignsByNature() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1110", AccountName: "Bank", Nature: domain.DebitNature, Debit: dec("1000"), Credit: dec("400")},
		{AccountCode: "2205", AccountName: "Suppliers", Nature: domain.CreditNature, Debit: dec("100"), Credit: dec("700")},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(rows, nil).Once()

	got, err := suite.service.ComputeTrialBalance(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	// Debit nature: debit - credit.
	suite.True(got[0].Balance.Equal(dec("600")), "got %s", got[0].Balance)
	// Credit nature: credit - debit.
	suite.True(got[1].Balance.Equal(dec("600")), "got %s", got[1].Balance)
}

func (suite *ReportingServiceTestSuite) TestBuildIncomeStatementFromRows_Classification() {
	rows := []domain.TrialBalanceRow{
		{AccountCode: "4135", AccountName: "Sales", Nature: domain.CreditNature, Balance: dec("1000")},
		{AccountCode: "6135", AccountName: "Cost of goods sold", Nature: domain.DebitNature, Balance: dec("600")},
		{AccountCode: "5160", AccountName: "Rent", Nature: domain.DebitNature, Balance: dec("150")},
		// Balance sheet classes must be ignored.
		{AccountCode: "1110", AccountName: "Bank", Nature: domain.DebitNature, Balance: dec("9999")},
	}

	stmt := services.BuildIncomeStatementFromRows(rows)

	suite.Len(stmt.Revenue, 1)
	suite.Len(stmt.CostOfSales, 1)
	suite.Len(stmt.Expenses, 1)
	suite.True(stmt.TotalRevenue.Equal(dec("1000")))
	suite.True(stmt.GrossProfit.Equal(dec("400")))
	suite.True(stmt.OperatingProfit.Equal(dec("250")))
}

func (suite *ReportingServiceTestSuite) TestBuildBalanceSheetFromRows_FoldsPeriodResult() {
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1110", AccountName: "Bank", Nature: domain.DebitNature, Balance: dec("1250")},
		{AccountCode: "2205", AccountName: "Suppliers", Nature: domain.CreditNature, Balance: dec("500")},
		{AccountCode: "3105", AccountName: "Capital", Nature: domain.CreditNature, Balance: dec("500")},
	}

	sheet := services.BuildBalanceSheetFromRows(rows, dec("250"))

	suite.True(sheet.TotalAssets.Equal(dec("1250")))
	suite.True(sheet.TotalLiabilities.Equal(dec("500")))
	// Equity folds the current period result: 500 + 250.
	suite.True(sheet.TotalEquity.Equal(dec("750")))
	suite.True(sheet.EquationCheck.IsZero(), "equation check %s", sheet.EquationCheck)
}

// A fully self-consistent ledger yields a balance sheet whose equation check
// is exactly zero.
func (suite *ReportingServiceTestSuite) TestBuildBalanceSheet_EquationHolds() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	// Capital 1000 in, sale of 400 for cash: bank 1400, capital 1000, revenue 400.
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1110", AccountName: "Bank", Nature: domain.DebitNature, Debit: dec("1400"), Credit: dec("0")},
		{AccountCode: "3105", AccountName: "Capital", Nature: domain.CreditNature, Debit: dec("0"), Credit: dec("1000")},
		{AccountCode: "4135", AccountName: "Sales", Nature: domain.CreditNature, Debit: dec("0"), Credit: dec("400")},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, (*time.Time)(nil), &asOf).Return(rows, nil).Once()
	// Period statement query for the equity fold.
	yearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("GetTrialBalanceData", ctx, &yearStart, &asOf).Return(rows, nil).Once()

	sheet, err := suite.service.BuildBalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(sheet.CurrentPeriodResult.Equal(dec("400")))
	suite.True(sheet.TotalEquity.Equal(dec("1400")))
	suite.True(sheet.EquationCheck.IsZero(), "equation check %s", sheet.EquationCheck)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
