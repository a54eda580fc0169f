package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

var (
	ErrBadAssetAmounts = errors.New("asset cost must exceed residual value")
	ErrAssetDisposed   = errors.New("asset is already disposed")
)

// assetService is the straight-line depreciation sub-ledger.
type assetService struct {
	assetRepo   portsrepo.AssetRepository
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo portsrepo.AssetRepository, journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.AssetSvcFacade {
	return &assetService{
		assetRepo:   assetRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// RegisterAsset inserts the asset row and posts its acquisition entry
// (debit asset account, credit funding account) in one transactional
// boundary: either both writes land or neither does.
func (s *assetService) RegisterAsset(ctx context.Context, req dto.RegisterAssetRequest, actorID string) (*domain.FixedAsset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Residual.IsNegative() || !req.Cost.GreaterThan(req.Residual) {
		return nil, fmt.Errorf("%w: cost=%s residual=%s", ErrBadAssetAmounts, req.Cost, req.Residual)
	}

	codes := []string{req.AssetAccount, req.AccumDepAccount, req.DepExpenseAccount, req.FundingAccount}
	accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset accounts: %w", err)
	}
	for _, code := range codes {
		if _, found := accountsMap[code]; !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
		}
	}

	now := time.Now().UTC()
	asset := domain.FixedAsset{
		AssetID:           uuid.NewString(),
		Name:              req.Name,
		Cost:              req.Cost,
		Residual:          req.Residual,
		UsefulLifeMonths:  req.UsefulLifeMonths,
		AssetAccount:      req.AssetAccount,
		AccumDepAccount:   req.AccumDepAccount,
		DepExpenseAccount: req.DepExpenseAccount,
		Status:            domain.AssetActive,
		AcquiredAt:        req.AcquiredAt,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actorID,
		},
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        req.AcquiredAt,
		Type:        domain.EntryAcquisition,
		Description: fmt.Sprintf("Acquisition of asset %s", req.Name),
		TotalDebit:  req.Cost,
		TotalCredit: req.Cost,
		ActorID:     actorID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actorID,
		},
	}
	postings := []domain.Posting{
		{
			PostingID:   uuid.NewString(),
			EntryID:     entryID,
			AccountCode: req.AssetAccount,
			Detail:      entry.Description,
			Debit:       req.Cost,
			Credit:      decimal.Zero,
		},
		{
			PostingID:   uuid.NewString(),
			EntryID:     entryID,
			AccountCode: req.FundingAccount,
			Detail:      entry.Description,
			Debit:       decimal.Zero,
			Credit:      req.Cost,
		},
	}

	if err := s.assetRepo.SaveAssetWithAcquisition(ctx, asset, entry, postings); err != nil {
		logger.Error("Failed to register asset", slog.String("error", err.Error()), slog.String("asset_id", asset.AssetID))
		return nil, fmt.Errorf("failed to register asset %s: %w", req.Name, err)
	}

	logger.Info("Asset registered",
		slog.String("asset_id", asset.AssetID),
		slog.String("cost", asset.Cost.String()),
		slog.String("entry_id", entryID),
	)
	return &asset, nil
}

// GetAsset retrieves one asset by ID.
func (s *assetService) GetAsset(ctx context.Context, assetID string) (*domain.FixedAsset, error) {
	return s.assetRepo.FindAssetByID(ctx, assetID)
}

// ListAssets returns all assets, active and disposed.
func (s *assetService) ListAssets(ctx context.Context) ([]domain.FixedAsset, error) {
	return s.assetRepo.ListAssets(ctx, false)
}

// accountPair keys the consolidation of depreciation charges.
type accountPair struct {
	expense  string
	accumDep string
}

// RunMonthlyDepreciation charges every active asset for the period.
// Charges sharing the same (expense, accumulated depreciation) account pair
// are consolidated into a single entry, and the whole run is persisted in
// one transaction. Cumulative depreciation is intentionally not capped at
// cost-residual, matching the system this ledger replaces.
func (s *assetService) RunMonthlyDepreciation(ctx context.Context, year int, month time.Month, actorID string) (*domain.DepreciationRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, err := s.assetRepo.ListAssets(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assets: %w", err)
	}

	result := &domain.DepreciationRunResult{
		Year:        year,
		Month:       month,
		TotalCharge: decimal.Zero,
		EntryIDs:    []string{},
	}

	charges := make(map[accountPair]decimal.Decimal)
	for _, asset := range assets {
		charge := accounting.MonthlyStraightLineCharge(asset.Cost, asset.Residual, asset.UsefulLifeMonths)
		if !charge.IsPositive() {
			continue
		}
		pair := accountPair{expense: asset.DepExpenseAccount, accumDep: asset.AccumDepAccount}
		charges[pair] = charges[pair].Add(charge)
		result.AssetsCharged++
		result.TotalCharge = result.TotalCharge.Add(charge)
	}

	if len(charges) == 0 {
		logger.Info("Depreciation run found nothing to charge", slog.Int("year", year), slog.Int("month", int(month)))
		return result, nil
	}

	// Deterministic entry order regardless of map iteration.
	pairs := make([]accountPair, 0, len(charges))
	for pair := range charges {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].expense != pairs[j].expense {
			return pairs[i].expense < pairs[j].expense
		}
		return pairs[i].accumDep < pairs[j].accumDep
	})

	now := time.Now().UTC()
	entryDate := accounting.MonthEnd(year, month)
	description := fmt.Sprintf("Depreciation %d-%02d", year, int(month))

	entries := make([]domain.JournalEntry, 0, len(pairs))
	for _, pair := range pairs {
		amount := charges[pair]
		entryID := uuid.NewString()
		entry := domain.JournalEntry{
			EntryID:     entryID,
			Date:        entryDate,
			Type:        domain.EntryDepreciation,
			Description: description,
			TotalDebit:  amount,
			TotalCredit: amount,
			ActorID:     actorID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: actorID,
			},
			Postings: []domain.Posting{
				{
					PostingID:   uuid.NewString(),
					EntryID:     entryID,
					AccountCode: pair.expense,
					Detail:      description,
					Debit:       amount,
					Credit:      decimal.Zero,
				},
				{
					PostingID:   uuid.NewString(),
					EntryID:     entryID,
					AccountCode: pair.accumDep,
					Detail:      description,
					Debit:       decimal.Zero,
					Credit:      amount,
				},
			},
		}
		entries = append(entries, entry)
		result.EntryIDs = append(result.EntryIDs, entryID)
	}

	if err := s.journalRepo.SaveEntries(ctx, entries); err != nil {
		logger.Error("Failed to post depreciation entries", slog.String("error", err.Error()), slog.Int("year", year), slog.Int("month", int(month)))
		return nil, fmt.Errorf("failed to post depreciation for %d-%02d: %w", year, int(month), err)
	}

	logger.Info("Depreciation run posted",
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.Int("assets_charged", result.AssetsCharged),
		slog.Int("entries", len(entries)),
		slog.String("total", result.TotalCharge.String()),
	)
	return result, nil
}

// DisposeAsset flips the asset to DISPOSED so the scheduler skips it.
func (s *assetService) DisposeAsset(ctx context.Context, assetID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.assetRepo.MarkDisposed(ctx, assetID, actorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrAssetDisposed, assetID)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to dispose asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return fmt.Errorf("failed to dispose asset %s: %w", assetID, err)
	}

	logger.Info("Asset disposed", slog.String("asset_id", assetID))
	return nil
}
