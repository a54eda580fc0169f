package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// CreateItemRequest defines the payload for registering an inventory item.
type CreateItemRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ApplyMovementRequest defines the payload for one inventory movement.
// InventoryAccount/CounterpartAccount are optional as a pair: when both are
// set the movement is mirrored into the ledger in the same transaction.
type ApplyMovementRequest struct {
	Kind               string          `json:"kind" binding:"required,movementkind"`
	Qty                decimal.Decimal `json:"qty" binding:"required"`
	UnitCost           decimal.Decimal `json:"unitCost"`
	Date               time.Time       `json:"date" binding:"required"`
	Detail             string          `json:"detail"`
	InventoryAccount   string          `json:"inventoryAccount"`
	CounterpartAccount string          `json:"counterpartAccount"`
}

// ItemResponse defines the data returned for an inventory item.
type ItemResponse struct {
	ItemID    string          `json:"itemID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	QtyOnHand decimal.Decimal `json:"qtyOnHand"`
	AvgCost   decimal.Decimal `json:"avgCost"`
}

// MovementResponse is one Kardex row.
type MovementResponse struct {
	MovementID string          `json:"movementID"`
	Date       time.Time       `json:"date"`
	Kind       string          `json:"kind"`
	Qty        decimal.Decimal `json:"qty"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	EntryID    *string         `json:"entryID,omitempty"`
}

// ToItemResponse converts a domain.InventoryItem to ItemResponse DTO.
func ToItemResponse(it *domain.InventoryItem) ItemResponse {
	return ItemResponse{
		ItemID:    it.ItemID,
		SKU:       it.SKU,
		Name:      it.Name,
		QtyOnHand: it.QtyOnHand,
		AvgCost:   it.AvgCost,
	}
}

// ToMovementResponses converts a Kardex slice to []MovementResponse.
func ToMovementResponses(movements []domain.InventoryMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = MovementResponse{
			MovementID: m.MovementID,
			Date:       m.Date,
			Kind:       string(m.Kind),
			Qty:        m.Qty,
			UnitCost:   m.UnitCost,
			EntryID:    m.EntryID,
		}
	}
	return responses
}
