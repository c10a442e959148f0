package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderSet groups the seller orders split from a single cart. CartID is unique:
// at most one order set may ever exist for a cart, which is what makes the
// completion workflow idempotent.
type OrderSet struct {
	ID                  uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayID           int64         `gorm:"column:display_id;autoIncrement;uniqueIndex"`
	CartID              uuid.UUID     `gorm:"column:cart_id;type:uuid;uniqueIndex;not null"`
	CustomerID          uuid.UUID     `gorm:"column:customer_id;type:uuid;not null"`
	SalesChannelID      uuid.UUID     `gorm:"column:sales_channel_id;type:uuid;not null"`
	PaymentCollectionID uuid.UUID     `gorm:"column:payment_collection_id;type:uuid;not null"`
	Orders              []SellerOrder `gorm:"foreignKey:OrderSetID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time     `gorm:"column:created_at;autoCreateTime"`
}
