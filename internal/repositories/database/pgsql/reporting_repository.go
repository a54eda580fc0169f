package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for report aggregation.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTrialBalanceData sums posting debits and credits per account over the
// inclusive [from, to] window, skipping voided postings. Accounts with zero
// movement in the window are excluded via HAVING. The Balance field is left
// zero for the service to sign by account nature.
func (r *ReportingRepository) GetTrialBalanceData(ctx context.Context, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.code, a.name, a.nature,
		       COALESCE(SUM(p.debit), 0)  AS total_debit,
		       COALESCE(SUM(p.credit), 0) AS total_credit
		FROM postings p
		JOIN journal_entries e ON p.entry_id = e.entry_id
		JOIN accounts a ON p.account_code = a.code
		WHERE p.voided = FALSE
		  AND ($1::timestamptz IS NULL OR e.entry_date >= $1)
		  AND ($2::timestamptz IS NULL OR e.entry_date <= $2)
		GROUP BY a.code, a.name, a.nature
		HAVING COALESCE(SUM(p.debit), 0) <> 0 OR COALESCE(SUM(p.credit), 0) <> 0
		ORDER BY a.code ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	results := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountCode,
			&row.AccountName,
			&row.Nature,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return results, nil
}
