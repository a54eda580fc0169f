package repositories

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// MovementMirror names the ledger accounts a movement posts against. When
// nil the movement stays in the sub-ledger only.
type MovementMirror struct {
	InventoryAccount   string
	CounterpartAccount string
	ActorID            string
	Description        string
}

// InventoryRepository persists items and their Kardex. ApplyMovement is the
// only mutation path for item state.
type InventoryRepository interface {
	// SaveItem inserts a new item. apperrors.ErrDuplicate when the SKU
	// already exists.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// FindItemByID returns apperrors.ErrNotFound when absent.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// ListItems returns all items ordered by SKU.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// ApplyMovement locks the item row, recomputes quantity and weighted
	// average cost under the lock, appends the Kardex row and, when mirror is
	// non-nil, writes the mirroring journal entry — all in one transaction.
	// Fails with apperrors.ErrInsufficientStock when an outbound movement
	// would drive quantity negative; no rows are written in that case.
	ApplyMovement(ctx context.Context, movement domain.InventoryMovement, mirror *MovementMirror) (*domain.InventoryItem, error)

	// ListMovementsByItem returns the Kardex ordered by (date, id).
	ListMovementsByItem(ctx context.Context, itemID string) ([]domain.InventoryMovement, error)
}
