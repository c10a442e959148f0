package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// CommissionLine records the commission owed on one order line under the rule
// that matched it. Lines only exist where a rule matched; they are immutable
// once created.
type CommissionLine struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ItemLineID uuid.UUID       `gorm:"column:item_line_id;type:uuid;not null;index;uniqueIndex:uq_commission_lines_item_rule"`
	RuleID     uuid.UUID       `gorm:"column:rule_id;type:uuid;not null;uniqueIndex:uq_commission_lines_item_rule"`
	Currency   enums.Currency  `gorm:"column:currency;type:text;not null"`
	Value      decimal.Decimal `gorm:"column:value;type:numeric;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
