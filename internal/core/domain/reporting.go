package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow aggregates the movement of one account over a date range.
// Balance is signed by account nature: debit-nature accounts report
// debit-credit, credit-nature accounts report credit-debit.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Nature      AccountNature   `json:"nature"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// StatementLine is one classified account line in a financial statement.
type StatementLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement derives results from revenue, cost-of-sales and expense
// classes. No tax or net-income adjustment is applied.
type IncomeStatement struct {
	Revenue         []StatementLine `json:"revenue"`
	CostOfSales     []StatementLine `json:"costOfSales"`
	Expenses        []StatementLine `json:"expenses"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCostOfSale decimal.Decimal `json:"totalCostOfSales"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	OperatingProfit decimal.Decimal `json:"operatingProfit"`
}

// BalanceSheet reports assets, liabilities and equity as of a date.
// EquationCheck is a diagnostic only; legacy or partial data may not
// reconcile exactly.
type BalanceSheet struct {
	Assets              []StatementLine `json:"assets"`
	Liabilities         []StatementLine `json:"liabilities"`
	Equity              []StatementLine `json:"equity"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	TotalEquity         decimal.Decimal `json:"totalEquity"`
	CurrentPeriodResult decimal.Decimal `json:"currentPeriodResult"`
	EquationCheck       decimal.Decimal `json:"equationCheck"`
}
