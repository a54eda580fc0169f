package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock for outbound movement")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrBadMovement       = errors.New("invalid movement")
	ErrHalfMirror        = errors.New("ledger mirror requires both inventory and counterpart accounts")
)

// inventoryService is the weighted-average costing sub-ledger. Item state
// changes only through movement application; every movement leaves one
// immutable Kardex row.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
	accountRepo   portsrepo.AccountRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, accountRepo portsrepo.AccountRepository) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateItem registers a new SKU with zero stock and zero average cost.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest, actorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item := domain.InventoryItem{
		ItemID:    uuid.NewString(),
		SKU:       req.SKU,
		Name:      req.Name,
		QtyOnHand: decimal.Zero,
		AvgCost:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: actorID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSKU, req.SKU)
		}
		logger.Error("Failed to save inventory item", slog.String("error", err.Error()), slog.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to save item %s: %w", req.SKU, err)
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("sku", item.SKU))
	return &item, nil
}

// GetItem retrieves one item by ID.
func (s *inventoryService) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByID(ctx, itemID)
}

// ListItems returns all items ordered by SKU.
func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListItems(ctx)
}

// ApplyMovement applies one movement to an item. Inbound movements blend the
// weighted average cost; outbound ones relieve stock at the current average
// and fail on insufficient quantity. When the request names a ledger account
// pair the movement is mirrored into the ledger in the same transaction.
func (s *inventoryService) ApplyMovement(ctx context.Context, itemID string, req dto.ApplyMovementRequest, actorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.MovementKind(req.Kind)
	switch kind {
	case domain.MovementPurchase, domain.MovementSale, domain.MovementAdjustPositive, domain.MovementAdjustNegative:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrBadMovement, req.Kind)
	}

	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrBadMovement)
	}
	if kind.Inbound() && req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost must not be negative", ErrBadMovement)
	}

	// The item must exist before we open the write transaction.
	if _, err := s.inventoryRepo.FindItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	var mirror *portsrepo.MovementMirror
	if req.InventoryAccount != "" || req.CounterpartAccount != "" {
		if req.InventoryAccount == "" || req.CounterpartAccount == "" {
			return nil, ErrHalfMirror
		}
		accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, []string{req.InventoryAccount, req.CounterpartAccount})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch mirror accounts: %w", err)
		}
		for _, code := range []string{req.InventoryAccount, req.CounterpartAccount} {
			if _, found := accountsMap[code]; !found {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
			}
		}
		mirror = &portsrepo.MovementMirror{
			InventoryAccount:   req.InventoryAccount,
			CounterpartAccount: req.CounterpartAccount,
			ActorID:            actorID,
			Description:        req.Detail,
		}
	}

	movement := domain.InventoryMovement{
		MovementID: uuid.NewString(),
		ItemID:     itemID,
		Date:       req.Date,
		Kind:       kind,
		Qty:        req.Qty,
		UnitCost:   req.UnitCost,
	}

	updated, err := s.inventoryRepo.ApplyMovement(ctx, movement, mirror)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: item %s", ErrInsufficientStock, itemID)
		}
		logger.Error("Failed to apply inventory movement", slog.String("error", err.Error()), slog.String("item_id", itemID), slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to apply movement to item %s: %w", itemID, err)
	}

	logger.Info("Inventory movement applied",
		slog.String("item_id", itemID),
		slog.String("kind", string(kind)),
		slog.String("qty", req.Qty.String()),
		slog.String("new_avg_cost", updated.AvgCost.String()),
	)
	return updated, nil
}

// GetKardex returns the item's full movement history ordered by (date, id).
func (s *inventoryService) GetKardex(ctx context.Context, itemID string) ([]domain.InventoryMovement, error) {
	if _, err := s.inventoryRepo.FindItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListMovementsByItem(ctx, itemID)
}
