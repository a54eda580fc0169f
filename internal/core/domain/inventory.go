package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind identifies the direction and origin of an inventory movement.
type MovementKind string

const (
	MovementPurchase       MovementKind = "PURCHASE"
	MovementSale           MovementKind = "SALE"
	MovementAdjustPositive MovementKind = "ADJUST_POS"
	MovementAdjustNegative MovementKind = "ADJUST_NEG"
)

// Inbound reports whether the movement adds stock.
func (k MovementKind) Inbound() bool {
	return k == MovementPurchase || k == MovementAdjustPositive
}

// InventoryItem is the current costing state of one SKU. It is mutated only
// through movement application; QtyOnHand never goes negative.
type InventoryItem struct {
	ItemID    string          `json:"itemID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	QtyOnHand decimal.Decimal `json:"qtyOnHand"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	AuditFields
}

// InventoryMovement is one immutable Kardex row. EntryID links the journal
// entry that mirrors the movement into the ledger, when one was generated.
type InventoryMovement struct {
	MovementID string          `json:"movementID"`
	ItemID     string          `json:"itemID"`
	Date       time.Time       `json:"date"`
	Kind       MovementKind    `json:"kind"`
	Qty        decimal.Decimal `json:"qty"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	EntryID    *string         `json:"entryID,omitempty"`
}
