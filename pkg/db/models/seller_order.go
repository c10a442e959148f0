package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	"github.com/dmarquina/sellerhub-backend/pkg/types"
)

// SellerOrder is the per-seller order produced by splitting a cart. Each order
// carries exactly one shipping method and only that seller's line items.
type SellerOrder struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderSetID      uuid.UUID             `gorm:"column:order_set_id;type:uuid;not null;index"`
	SellerID        uuid.UUID             `gorm:"column:seller_id;type:uuid;not null;index"`
	CartID          uuid.UUID             `gorm:"column:cart_id;type:uuid;not null"`
	CustomerID      uuid.UUID             `gorm:"column:customer_id;type:uuid;not null"`
	RegionID        uuid.UUID             `gorm:"column:region_id;type:uuid;not null"`
	SalesChannelID  uuid.UUID             `gorm:"column:sales_channel_id;type:uuid;not null"`
	Currency        enums.Currency        `gorm:"column:currency;type:text;not null"`
	Email           string                `gorm:"column:email;not null"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	PromoCodes      pq.StringArray        `gorm:"column:promo_codes;type:text[]"`
	Items           []OrderLineItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingMethods []OrderShippingMethod `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	SplitPayment    *SplitOrderPayment    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// AccountingTotal sums item totals and shipping amounts for the order. It is
// the figure split payments authorize against.
func (o SellerOrder) AccountingTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ItemTotal)
	}
	for _, method := range o.ShippingMethods {
		total = total.Add(method.Amount)
	}
	return total
}

// OrderLineItem snapshots one cart line on a seller order. CartItemID points
// back at the originating cart line; commission lines reference it.
type OrderLineItem struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID              `gorm:"column:order_id;type:uuid;not null;index"`
	CartItemID        uuid.UUID              `gorm:"column:cart_item_id;type:uuid;not null"`
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
}

// OrderShippingMethod carries over the seller's cart shipping method.
type OrderShippingMethod struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ShippingOptionID uuid.UUID       `gorm:"column:shipping_option_id;type:uuid;not null"`
	Name             string          `gorm:"column:name;not null"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	TaxLines         []types.TaxLine `gorm:"column:tax_lines;type:jsonb;serializer:json"`
	Data             types.JSONMap   `gorm:"column:data;type:jsonb;serializer:json"`
	Metadata         types.JSONMap   `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
