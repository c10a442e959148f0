package commission

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// CreateCommissionRateInput is the monetary policy attached to a new rule.
type CreateCommissionRateInput struct {
	Type           enums.CommissionRateType `validate:"required,oneof=flat percentage"`
	PercentageRate decimal.Decimal          `validate:"-"`
	IncludeTax     bool
	PriceSetID     *uuid.UUID
	MinPriceSetID  *uuid.UUID
	MaxPriceSetID  *uuid.UUID
}

// CreateCommissionRuleInput describes a new commission rule and its rate.
type CreateCommissionRuleInput struct {
	Name        string                        `validate:"required"`
	Reference   enums.CommissionRuleReference `validate:"required"`
	ReferenceID string                        `validate:"-"`
	Rate        CreateCommissionRateInput     `validate:"required"`
}
