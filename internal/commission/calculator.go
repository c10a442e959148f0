package commission

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

type priceSetLoader interface {
	RetrievePriceSet(ctx context.Context, id uuid.UUID) (*models.PriceSet, error)
}

// Calculator computes the commission value a rate yields for one order line.
// All arithmetic is decimal; floats never touch these amounts.
type Calculator struct {
	prices priceSetLoader
}

// NewCalculator builds a calculator over the given price set store.
func NewCalculator(prices priceSetLoader) *Calculator {
	return &Calculator{prices: prices}
}

// Calculate returns the commission owed for the line under the rate.
//
// Flat rates return the price-set amount for the order currency, or zero when
// no entry exists for it; the amount is per line, not per unit. Percentage
// rates apply the rate to the line's price base (tax included or not per the
// rate) and clamp the result between the min/max price-set amounts, min
// defaulting to zero and max to unbounded. An unrecognized rate type yields
// zero rather than an error.
func (c *Calculator) Calculate(ctx context.Context, rate *models.CommissionRate, line models.OrderLineItem, currency enums.Currency) (decimal.Decimal, error) {
	if rate == nil {
		return decimal.Zero, nil
	}
	switch rate.Type {
	case enums.CommissionRateFlat:
		return c.flatValue(ctx, rate, currency)
	case enums.CommissionRatePercentage:
		return c.percentageValue(ctx, rate, line, currency)
	default:
		return decimal.Zero, nil
	}
}

func (c *Calculator) flatValue(ctx context.Context, rate *models.CommissionRate, currency enums.Currency) (decimal.Decimal, error) {
	amount, found, err := c.lookupAmount(ctx, rate.PriceSetID, currency)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, nil
	}
	return amount, nil
}

func (c *Calculator) percentageValue(ctx context.Context, rate *models.CommissionRate, line models.OrderLineItem, currency enums.Currency) (decimal.Decimal, error) {
	taxValue := line.ItemTaxTotal

	totalPrice := line.ItemTotal
	if !line.IsTaxInclusive {
		totalPrice = line.ItemSubtotal.Add(taxValue)
	}

	base := totalPrice
	if !rate.IncludeTax {
		base = totalPrice.Sub(taxValue)
	}

	raw := base.Mul(rate.PercentageRate.Div(oneHundred))

	minValue, found, err := c.lookupAmount(ctx, rate.MinPriceSetID, currency)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		minValue = decimal.Zero
	}

	maxValue, maxFound, err := c.lookupAmount(ctx, rate.MaxPriceSetID, currency)
	if err != nil {
		return decimal.Zero, err
	}

	// clamp: max(min, min(max, raw))
	value := raw
	if maxFound && value.GreaterThan(maxValue) {
		value = maxValue
	}
	if value.LessThan(minValue) {
		value = minValue
	}
	return value, nil
}

// lookupAmount fetches the currency entry from the referenced price set. A nil
// set id or a currency with no entry reports found=false; the caller picks the
// default. A missing price set row is treated the same way.
func (c *Calculator) lookupAmount(ctx context.Context, priceSetID *uuid.UUID, currency enums.Currency) (decimal.Decimal, bool, error) {
	if priceSetID == nil || *priceSetID == uuid.Nil {
		return decimal.Zero, false, nil
	}
	set, err := c.prices.RetrievePriceSet(ctx, *priceSetID)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	amount, found := set.AmountFor(currency)
	return amount, found, nil
}
