package repositories

import (
	"context"
	"time"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// AssetRepository persists fixed assets.
type AssetRepository interface {
	// SaveAssetWithAcquisition inserts the asset row and its acquisition
	// journal entry in ONE transaction: either both land or neither does.
	SaveAssetWithAcquisition(ctx context.Context, asset domain.FixedAsset, entry domain.JournalEntry, postings []domain.Posting) error

	// FindAssetByID returns apperrors.ErrNotFound when absent.
	FindAssetByID(ctx context.Context, assetID string) (*domain.FixedAsset, error)

	// ListAssets returns assets ordered by acquisition date; onlyActive
	// filters out disposed ones.
	ListAssets(ctx context.Context, onlyActive bool) ([]domain.FixedAsset, error)

	// MarkDisposed flips status ACTIVE -> DISPOSED. apperrors.ErrConflict
	// when already disposed, apperrors.ErrNotFound when absent.
	MarkDisposed(ctx context.Context, assetID string, actorID string, at time.Time) error
}
