package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// BalanceTolerance is the rounding slack allowed when comparing debit and
// credit totals.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// Balanced reports whether total debits equal total credits within tolerance.
func Balanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// AmountsMatch reports whether two positive amounts are equal within tolerance.
// Used by the reconciliation matcher.
func AmountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// SignedBalance computes the natural balance of an account from its debit and
// credit sums: debit-nature accounts carry debit-credit, credit-nature
// accounts carry credit-debit.
func SignedBalance(nature domain.AccountNature, debit, credit decimal.Decimal) decimal.Decimal {
	if nature == domain.CreditNature {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// NextWeightedAverage recomputes the blended unit cost after an inbound
// movement. When the resulting quantity is zero or negative the incoming unit
// cost becomes the new average.
func NextWeightedAverage(qtyOnHand, avgCost, qty, unitCost decimal.Decimal) (newQty, newAvg decimal.Decimal) {
	newQty = qtyOnHand.Add(qty)
	if newQty.IsPositive() {
		existing := qtyOnHand.Mul(avgCost)
		incoming := qty.Mul(unitCost)
		newAvg = existing.Add(incoming).Div(newQty)
	} else {
		newAvg = unitCost
	}
	return newQty, newAvg
}

// MonthlyStraightLineCharge computes the monthly depreciation charge for an
// asset: (cost - residual) / useful life, rounded to cents.
func MonthlyStraightLineCharge(cost, residual decimal.Decimal, usefulLifeMonths int) decimal.Decimal {
	if usefulLifeMonths <= 0 {
		return decimal.Zero
	}
	return cost.Sub(residual).Div(decimal.NewFromInt(int64(usefulLifeMonths))).Round(2)
}

// YearStart returns January 1st of the year of t, preserving location.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of the given month at midnight.
func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}
