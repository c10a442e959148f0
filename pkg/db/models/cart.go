package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	"github.com/dmarquina/sellerhub-backend/pkg/types"
)

// CartRecord is the customer cart the split workflow consumes. Items may span
// several sellers; shipping methods are one per seller shipping option.
type CartRecord struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID          uuid.UUID            `gorm:"column:customer_id;type:uuid;not null"`
	RegionID            uuid.UUID            `gorm:"column:region_id;type:uuid;not null"`
	SalesChannelID      uuid.UUID            `gorm:"column:sales_channel_id;type:uuid;not null"`
	PaymentCollectionID uuid.UUID            `gorm:"column:payment_collection_id;type:uuid;not null"`
	Currency            enums.Currency       `gorm:"column:currency;type:text;not null;default:'usd'"`
	Email               string               `gorm:"column:email;not null"`
	Status              enums.CartStatus     `gorm:"column:status;type:text;not null;default:'active'"`
	Items               []CartItem           `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	ShippingMethods     []CartShippingMethod `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CompletedAt         *time.Time           `gorm:"column:completed_at"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem snapshots one product variant line inside a cart, including the
// pricing/tax figures commission and split-payment math consume.
type CartItem struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID            uuid.UUID              `gorm:"column:cart_id;type:uuid;not null"`
	ProductID         uuid.UUID              `gorm:"column:product_id;type:uuid;not null"`
	VariantID         uuid.UUID              `gorm:"column:variant_id;type:uuid;not null"`
	ProductTypeID     string                 `gorm:"column:product_type_id;not null;default:''"`
	ProductCategoryID string                 `gorm:"column:product_category_id;not null;default:''"`
	Title             string                 `gorm:"column:title;not null"`
	Quantity          int                    `gorm:"column:quantity;not null"`
	UnitPrice         decimal.Decimal        `gorm:"column:unit_price;type:numeric;not null"`
	ItemSubtotal      decimal.Decimal        `gorm:"column:item_subtotal;type:numeric;not null"`
	ItemTaxTotal      decimal.Decimal        `gorm:"column:item_tax_total;type:numeric;not null"`
	ItemTotal         decimal.Decimal        `gorm:"column:item_total;type:numeric;not null"`
	IsTaxInclusive    bool                   `gorm:"column:is_tax_inclusive;not null;default:false"`
	Adjustments       []types.LineAdjustment `gorm:"column:adjustments;type:jsonb;serializer:json"`
	TaxLines          []types.TaxLine        `gorm:"column:tax_lines;type:jsonb;serializer:json"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// CartShippingMethod is one shipping selection made in the cart. Its shipping
// option belongs to exactly one seller.
type CartShippingMethod struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID           uuid.UUID              `gorm:"column:cart_id;type:uuid;not null"`
	ShippingOptionID uuid.UUID              `gorm:"column:shipping_option_id;type:uuid;not null"`
	Name             string                 `gorm:"column:name;not null"`
	Amount           decimal.Decimal        `gorm:"column:amount;type:numeric;not null"`
	Adjustments      []types.LineAdjustment `gorm:"column:adjustments;type:jsonb;serializer:json"`
	TaxLines         []types.TaxLine        `gorm:"column:tax_lines;type:jsonb;serializer:json"`
	Data             types.JSONMap          `gorm:"column:data;type:jsonb;serializer:json"`
	Metadata         types.JSONMap          `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
}
