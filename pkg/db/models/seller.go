package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller is a marketplace vendor.
type Seller struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Handle    string    `gorm:"column:handle;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SellerProduct links a product to its owning seller.
type SellerProduct struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID  uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// SellerShippingOption links a shipping option to its owning seller.
type SellerShippingOption struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID         uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	ShippingOptionID uuid.UUID `gorm:"column:shipping_option_id;type:uuid;uniqueIndex;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
