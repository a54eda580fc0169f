package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/middleware"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

// reportingService derives trial balances and financial statements from the
// ledger. It never mutates state.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ComputeTrialBalance sums debit/credit per account over the inclusive range
// and signs each balance by the account's nature.
func (s *reportingService) ComputeTrialBalance(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to query trial balance data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	for i := range rows {
		rows[i].Balance = accounting.SignedBalance(rows[i].Nature, rows[i].Debit, rows[i].Credit)
	}
	return rows, nil
}

// BuildIncomeStatement classifies trial-balance rows by the leading account
// code digit: 4 revenue, 5 expense, 6/7 cost of sales. Rows outside those
// classes are ignored. No tax or net-income adjustment is applied.
func (s *reportingService) BuildIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	rows, err := s.ComputeTrialBalance(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	stmt := BuildIncomeStatementFromRows(rows)
	return stmt, nil
}

// BuildIncomeStatementFromRows is the pure classification step, separated so
// statement math is testable without a store.
func BuildIncomeStatementFromRows(rows []domain.TrialBalanceRow) *domain.IncomeStatement {
	stmt := &domain.IncomeStatement{
		Revenue:         []domain.StatementLine{},
		CostOfSales:     []domain.StatementLine{},
		Expenses:        []domain.StatementLine{},
		TotalRevenue:    decimal.Zero,
		TotalCostOfSale: decimal.Zero,
		TotalExpenses:   decimal.Zero,
	}

	for _, row := range rows {
		line := domain.StatementLine{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Amount:      row.Balance,
		}
		switch domain.ClassForCode(row.AccountCode) {
		case domain.ClassRevenue:
			stmt.Revenue = append(stmt.Revenue, line)
			stmt.TotalRevenue = stmt.TotalRevenue.Add(line.Amount)
		case domain.ClassExpense:
			stmt.Expenses = append(stmt.Expenses, line)
			stmt.TotalExpenses = stmt.TotalExpenses.Add(line.Amount)
		case domain.ClassCostOfSales:
			stmt.CostOfSales = append(stmt.CostOfSales, line)
			stmt.TotalCostOfSale = stmt.TotalCostOfSale.Add(line.Amount)
		}
	}

	stmt.GrossProfit = stmt.TotalRevenue.Sub(stmt.TotalCostOfSale)
	stmt.OperatingProfit = stmt.GrossProfit.Sub(stmt.TotalExpenses)
	return stmt
}

// BuildBalanceSheet classifies accounts 1 asset, 2 liability, 3 equity as of
// the cut-off and folds the current year's operating profit into equity.
// EquationCheck is reported as a diagnostic, not enforced: partial or legacy
// data may not reconcile exactly.
func (s *reportingService) BuildBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	rows, err := s.ComputeTrialBalance(ctx, nil, &asOf)
	if err != nil {
		return nil, err
	}

	periodStmt, err := s.BuildIncomeStatement(ctx, accounting.YearStart(asOf), asOf)
	if err != nil {
		return nil, err
	}

	sheet := BuildBalanceSheetFromRows(rows, periodStmt.OperatingProfit)
	return sheet, nil
}

// BuildBalanceSheetFromRows is the pure classification step for the balance
// sheet, taking the already computed current-period result.
func BuildBalanceSheetFromRows(rows []domain.TrialBalanceRow, currentPeriodResult decimal.Decimal) *domain.BalanceSheet {
	sheet := &domain.BalanceSheet{
		Assets:              []domain.StatementLine{},
		Liabilities:         []domain.StatementLine{},
		Equity:              []domain.StatementLine{},
		TotalAssets:         decimal.Zero,
		TotalLiabilities:    decimal.Zero,
		TotalEquity:         decimal.Zero,
		CurrentPeriodResult: currentPeriodResult,
	}

	for _, row := range rows {
		line := domain.StatementLine{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Amount:      row.Balance,
		}
		switch domain.ClassForCode(row.AccountCode) {
		case domain.ClassAsset:
			sheet.Assets = append(sheet.Assets, line)
			sheet.TotalAssets = sheet.TotalAssets.Add(line.Amount)
		case domain.ClassLiability:
			sheet.Liabilities = append(sheet.Liabilities, line)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(line.Amount)
		case domain.ClassEquity:
			sheet.Equity = append(sheet.Equity, line)
			sheet.TotalEquity = sheet.TotalEquity.Add(line.Amount)
		}
	}

	sheet.TotalEquity = sheet.TotalEquity.Add(currentPeriodResult)
	sheet.EquationCheck = sheet.TotalAssets.Sub(sheet.TotalLiabilities.Add(sheet.TotalEquity))
	return sheet
}
