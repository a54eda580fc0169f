package services

import (
	"context"
	"time"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// ReportingSvcFacade derives trial balances and financial statements from
// the ledger. All operations are read-only.
type ReportingSvcFacade interface {
	// ComputeTrialBalance sums movement per account over the inclusive range
	// (nil from = since inception) and signs balances by account nature.
	ComputeTrialBalance(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error)

	// BuildIncomeStatement classifies trial-balance rows by leading account
	// code digit: 4 revenue, 5 expense, 6/7 cost of sales.
	BuildIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error)

	// BuildBalanceSheet classifies 1 asset, 2 liability, 3 equity as of the
	// given date and folds the current period's operating profit into equity.
	BuildBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
}
