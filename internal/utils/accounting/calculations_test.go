package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

func TestBalanced(t *testing.T) {
	tests := []struct {
		name     string
		debit    string
		credit   string
		balanced bool
	}{
		{"exact match", "100.00", "100.00", true},
		{"within tolerance", "100.00", "100.01", true},
		{"outside tolerance", "100.00", "100.02", false},
		{"zero both sides", "0", "0", true},
		{"large imbalance", "1000", "999", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.debit)
			c := decimal.RequireFromString(tt.credit)
			assert.Equal(t, tt.balanced, accounting.Balanced(d, c))
		})
	}
}

func TestSignedBalance(t *testing.T) {
	debit := decimal.NewFromInt(300)
	credit := decimal.NewFromInt(100)

	got := accounting.SignedBalance(domain.DebitNature, debit, credit)
	assert.True(t, got.Equal(decimal.NewFromInt(200)), "debit nature should be debit-credit")

	got = accounting.SignedBalance(domain.CreditNature, debit, credit)
	assert.True(t, got.Equal(decimal.NewFromInt(-200)), "credit nature should be credit-debit")
}

func TestNextWeightedAverage(t *testing.T) {
	// Two purchases from zero stock: 10 @ 100 then 10 @ 120 blends to 110.
	qty, avg := accounting.NextWeightedAverage(decimal.Zero, decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(100))
	assert.True(t, qty.Equal(decimal.NewFromInt(10)))
	assert.True(t, avg.Equal(decimal.NewFromInt(100)))

	qty, avg = accounting.NextWeightedAverage(qty, avg, decimal.NewFromInt(10), decimal.NewFromInt(120))
	assert.True(t, qty.Equal(decimal.NewFromInt(20)))
	assert.True(t, avg.Equal(decimal.NewFromInt(110)))
}

func TestNextWeightedAverage_ZeroResultingQty(t *testing.T) {
	// Receiving onto an empty item adopts the incoming cost outright.
	qty, avg := accounting.NextWeightedAverage(decimal.Zero, decimal.NewFromInt(50), decimal.Zero, decimal.NewFromInt(75))
	assert.True(t, qty.IsZero())
	assert.True(t, avg.Equal(decimal.NewFromInt(75)))
}

func TestMonthlyStraightLineCharge(t *testing.T) {
	cost := decimal.NewFromInt(100000)
	residual := decimal.NewFromInt(10000)

	charge := accounting.MonthlyStraightLineCharge(cost, residual, 60)
	assert.True(t, charge.Equal(decimal.NewFromFloat(1500.00)), "expected 1500.00, got %s", charge)

	charge = accounting.MonthlyStraightLineCharge(cost, residual, 0)
	assert.True(t, charge.IsZero(), "zero life should yield zero charge")

	// Non-terminating division rounds to cents.
	charge = accounting.MonthlyStraightLineCharge(decimal.NewFromInt(1000), decimal.Zero, 3)
	assert.True(t, charge.Equal(decimal.NewFromFloat(333.33)))
}

func TestYearStart(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), accounting.YearStart(asOf))
}

func TestMonthEnd(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), accounting.MonthEnd(2024, time.February))
	assert.Equal(t, time.Date(2023, time.April, 30, 0, 0, 0, 0, time.UTC), accounting.MonthEnd(2023, time.April))
}
