package services

import (
	"context"
	"time"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/dto"
)

// AssetSvcFacade is the straight-line depreciation sub-ledger surface.
type AssetSvcFacade interface {
	// RegisterAsset inserts the asset and posts its acquisition entry in one
	// transactional boundary.
	RegisterAsset(ctx context.Context, req dto.RegisterAssetRequest, actorID string) (*domain.FixedAsset, error)

	GetAsset(ctx context.Context, assetID string) (*domain.FixedAsset, error)
	ListAssets(ctx context.Context) ([]domain.FixedAsset, error)

	// RunMonthlyDepreciation charges every active asset for the period,
	// consolidating charges into one entry per (expense, accumulated
	// depreciation) account pair.
	RunMonthlyDepreciation(ctx context.Context, year int, month time.Month, actorID string) (*domain.DepreciationRunResult, error)

	// DisposeAsset flips the asset to DISPOSED; the scheduler skips it from
	// then on.
	DisposeAsset(ctx context.Context, assetID string, actorID string) error
}
