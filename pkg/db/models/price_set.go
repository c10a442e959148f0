package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// PriceSet groups currency-keyed amounts referenced by commission rates.
type PriceSet struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Prices    []Price   `gorm:"foreignKey:PriceSetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Price is one currency's amount inside a price set.
type Price struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PriceSetID uuid.UUID       `gorm:"column:price_set_id;type:uuid;not null;index"`
	Currency   enums.Currency  `gorm:"column:currency;type:text;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// AmountFor returns the amount for the given currency, if present.
func (p PriceSet) AmountFor(currency enums.Currency) (decimal.Decimal, bool) {
	for _, price := range p.Prices {
		if price.Currency == currency {
			return price.Amount, true
		}
	}
	return decimal.Zero, false
}
