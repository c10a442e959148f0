package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// CommissionRate is the monetary policy owned by a rule. Flat rates point at a
// currency-keyed price set; percentage rates carry the rate plus optional
// min/max price sets that clamp the computed value.
type CommissionRate struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RuleID         uuid.UUID                `gorm:"column:rule_id;type:uuid;uniqueIndex;not null"`
	Type           enums.CommissionRateType `gorm:"column:type;type:text;not null"`
	PercentageRate decimal.Decimal          `gorm:"column:percentage_rate;type:numeric;not null;default:0"`
	IncludeTax     bool                     `gorm:"column:include_tax;not null;default:false"`
	PriceSetID     *uuid.UUID               `gorm:"column:price_set_id;type:uuid"`
	MinPriceSetID  *uuid.UUID               `gorm:"column:min_price_set_id;type:uuid"`
	MaxPriceSetID  *uuid.UUID               `gorm:"column:max_price_set_id;type:uuid"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt           `gorm:"column:deleted_at;index"`
}
