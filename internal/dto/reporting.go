package dto

import "time"

// TrialBalanceParams bounds a trial balance. Both bounds are inclusive;
// omitting From means "since inception".
type TrialBalanceParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// PeriodParams bounds an income statement.
type PeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// AsOfParams selects the cut-off date for a balance sheet.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
}
