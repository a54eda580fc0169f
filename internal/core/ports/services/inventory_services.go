package services

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/dto"
)

// InventorySvcFacade is the weighted-average costing sub-ledger surface.
type InventorySvcFacade interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest, actorID string) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ApplyMovement applies one movement to an item: inbound movements blend
	// the average cost, outbound ones relieve stock at the current average
	// and fail on insufficient quantity. Returns the updated item snapshot.
	ApplyMovement(ctx context.Context, itemID string, req dto.ApplyMovementRequest, actorID string) (*domain.InventoryItem, error)

	// GetKardex returns the item's movement history ordered by (date, id).
	GetKardex(ctx context.Context, itemID string) ([]domain.InventoryMovement, error)
}
