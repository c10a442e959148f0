package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks stock for a product variant.
type InventoryItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID `gorm:"column:variant_id;type:uuid;uniqueIndex;not null"`
	AvailableQty int       `gorm:"column:available_qty;not null;default:0"`
	ReservedQty  int       `gorm:"column:reserved_qty;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// InventoryReservation is one line item's hold against a variant's stock.
type InventoryReservation struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID  uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index"`
	LineItemID uuid.UUID `gorm:"column:line_item_id;type:uuid;uniqueIndex;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
