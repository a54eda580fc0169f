package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
)

type PgxAssetRepository struct {
	BaseRepository
	journalRepo portsrepo.JournalRepository
}

// newPgxAssetRepository creates a new repository for fixed asset data. The
// journal repository is injected so acquisition entries land in the same
// transaction as the asset row.
func newPgxAssetRepository(pool *pgxpool.Pool, journalRepo portsrepo.JournalRepository) portsrepo.AssetRepository {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepository
var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, name, cost, residual, useful_life_months, asset_account, accum_dep_account, dep_expense_account, status, acquired_at, created_at, created_by`

func scanAsset(row pgx.Row) (domain.FixedAsset, error) {
	var a domain.FixedAsset
	err := row.Scan(
		&a.AssetID,
		&a.Name,
		&a.Cost,
		&a.Residual,
		&a.UsefulLifeMonths,
		&a.AssetAccount,
		&a.AccumDepAccount,
		&a.DepExpenseAccount,
		&a.Status,
		&a.AcquiredAt,
		&a.CreatedAt,
		&a.CreatedBy,
	)
	return a, err
}

// SaveAssetWithAcquisition inserts the asset row and its acquisition journal
// entry within a single DB transaction.
func (r *PgxAssetRepository) SaveAssetWithAcquisition(ctx context.Context, asset domain.FixedAsset, entry domain.JournalEntry, postings []domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO fixed_assets (
			asset_id, name, cost, residual, useful_life_months,
			asset_account, accum_dep_account, dep_expense_account,
			status, acquired_at, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		asset.AssetID,
		asset.Name,
		asset.Cost,
		asset.Residual,
		asset.UsefulLifeMonths,
		asset.AssetAccount,
		asset.AccumDepAccount,
		asset.DepExpenseAccount,
		asset.Status,
		asset.AcquiredAt,
		asset.CreatedAt,
		asset.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fixed asset "+asset.AssetID, err)
	}

	if err := r.journalRepo.InsertEntryInTx(ctx, tx, entry, postings); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindAssetByID retrieves one asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_assets WHERE asset_id = $1;`

	asset, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fixed asset by ID "+assetID, err)
	}
	return &asset, nil
}

// ListAssets retrieves assets ordered by acquisition date.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, onlyActive bool) ([]domain.FixedAsset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM fixed_assets
		WHERE ($1 = FALSE OR status = 'ACTIVE')
		ORDER BY acquired_at ASC, asset_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fixed assets", err)
	}
	defer rows.Close()

	assets := []domain.FixedAsset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fixed asset row", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fixed asset rows", err)
	}
	return assets, nil
}

// MarkDisposed flips an asset's status from ACTIVE to DISPOSED. The row is
// locked so a concurrent disposal cannot pass the state check.
func (r *PgxAssetRepository) MarkDisposed(ctx context.Context, assetID string, actorID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.AssetStatus
	err = tx.QueryRow(ctx, `SELECT status FROM fixed_assets WHERE asset_id = $1 FOR UPDATE;`, assetID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock fixed asset "+assetID, err)
	}
	if status == domain.AssetDisposed {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `
		UPDATE fixed_assets
		SET status = $2, disposed_at = $3, disposed_by = $4
		WHERE asset_id = $1;
	`, assetID, domain.AssetDisposed, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to dispose fixed asset "+assetID, err)
	}

	return r.Commit(ctx, tx)
}
