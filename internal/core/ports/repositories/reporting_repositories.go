package repositories

import (
	"context"
	"time"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// ReportingRepository aggregates posting data for reports. Read-only; runs
// against the pool under snapshot isolation and may observe slightly stale
// but never partially-committed data.
type ReportingRepository interface {
	// GetTrialBalanceData sums debit/credit per account over non-voided
	// postings in the inclusive [from, to] range (nil from = since
	// inception, nil to = through today). Only accounts with nonzero
	// movement are returned, ordered by code ascending. The Balance field is
	// left zero; the service signs it by account nature.
	GetTrialBalanceData(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error)
}
