package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// SplitOrderPayment is one order's slice of the cart's shared payment
// collection. Authorized amounts across an order set sum to the cart's
// authorized payment.
type SplitOrderPayment struct {
	ID                  uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID                `gorm:"column:order_id;type:uuid;uniqueIndex;not null"`
	PaymentCollectionID uuid.UUID                `gorm:"column:payment_collection_id;type:uuid;not null;index"`
	Status              enums.SplitPaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	AuthorizedAmount    decimal.Decimal          `gorm:"column:authorized_amount;type:numeric;not null"`
	CapturedAmount      decimal.Decimal          `gorm:"column:captured_amount;type:numeric;not null;default:0"`
	RefundedAmount      decimal.Decimal          `gorm:"column:refunded_amount;type:numeric;not null;default:0"`
	Currency            enums.Currency           `gorm:"column:currency;type:text;not null"`
	CreatedAt           time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
