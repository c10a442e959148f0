package commission

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

type stubPriceSets struct {
	sets map[uuid.UUID]*models.PriceSet
}

func (s *stubPriceSets) RetrievePriceSet(ctx context.Context, id uuid.UUID) (*models.PriceSet, error) {
	if set, ok := s.sets[id]; ok {
		return set, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price set not found")
}

func priceSet(amounts map[enums.Currency]int64) (*models.PriceSet, *uuid.UUID) {
	id := uuid.New()
	set := &models.PriceSet{ID: id}
	for currency, amount := range amounts {
		set.Prices = append(set.Prices, models.Price{
			ID:         uuid.New(),
			PriceSetID: id,
			Currency:   currency,
			Amount:     decimal.NewFromInt(amount),
		})
	}
	return set, &id
}

func taxedLine(subtotal, tax int64, inclusive bool) models.OrderLineItem {
	total := subtotal
	if !inclusive {
		total = subtotal + tax
	}
	return models.OrderLineItem{
		ItemSubtotal:   decimal.NewFromInt(subtotal),
		ItemTaxTotal:   decimal.NewFromInt(tax),
		ItemTotal:      decimal.NewFromInt(total),
		IsTaxInclusive: inclusive,
	}
}

func TestCalculatePercentageClampedByMax(t *testing.T) {
	t.Parallel()

	maxSet, maxID := priceSet(map[enums.Currency]int64{enums.CurrencyUSD: 50})
	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{maxSet.ID: maxSet}})

	rate := &models.CommissionRate{
		Type:           enums.CommissionRatePercentage,
		PercentageRate: decimal.NewFromInt(10),
		MaxPriceSetID:  maxID,
	}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 10% of 1000 is 100, clamped to the 50 max.
	if !value.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("value = %s, want 50", value)
	}
}

func TestCalculatePercentageUnclamped(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{}})
	rate := &models.CommissionRate{
		Type:           enums.CommissionRatePercentage,
		PercentageRate: decimal.NewFromInt(10),
	}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("value = %s, want 100", value)
	}
}

func TestCalculatePercentageIncludeTax(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{}})
	rate := &models.CommissionRate{
		Type:           enums.CommissionRatePercentage,
		PercentageRate: decimal.NewFromInt(10),
		IncludeTax:     true,
	}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 10% of the tax-included 1100.
	if !value.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("value = %s, want 110", value)
	}
}

func TestCalculatePercentageTaxInclusiveLine(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{}})
	rate := &models.CommissionRate{
		Type:           enums.CommissionRatePercentage,
		PercentageRate: decimal.NewFromInt(10),
	}
	// Tax-inclusive line: total already carries the tax.
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1100, 100, true), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("value = %s, want 100", value)
	}
}

func TestCalculatePercentageRaisedToMin(t *testing.T) {
	t.Parallel()

	minSet, minID := priceSet(map[enums.Currency]int64{enums.CurrencyUSD: 40})
	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{minSet.ID: minSet}})

	rate := &models.CommissionRate{
		Type:           enums.CommissionRatePercentage,
		PercentageRate: decimal.NewFromInt(1),
		MinPriceSetID:  minID,
	}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 1% of 1000 is 10, raised to the 40 min.
	if !value.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("value = %s, want 40", value)
	}
}

func TestCalculateFlat(t *testing.T) {
	t.Parallel()

	set, setID := priceSet(map[enums.Currency]int64{enums.CurrencyUSD: 25})
	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{set.ID: set}})

	rate := &models.CommissionRate{Type: enums.CommissionRateFlat, PriceSetID: setID}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("value = %s, want 25", value)
	}
}

func TestCalculateFlatMissingCurrency(t *testing.T) {
	t.Parallel()

	set, setID := priceSet(map[enums.Currency]int64{enums.CurrencyEUR: 25})
	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{set.ID: set}})

	rate := &models.CommissionRate{Type: enums.CommissionRateFlat, PriceSetID: setID}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.IsZero() {
		t.Fatalf("value = %s, want 0", value)
	}
}

func TestCalculateUnknownRateType(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{}})
	rate := &models.CommissionRate{Type: enums.CommissionRateType("tiered")}
	value, err := calc.Calculate(context.Background(), rate, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.IsZero() {
		t.Fatalf("value = %s, want 0", value)
	}
}

func TestCalculateNilRate(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(&stubPriceSets{sets: map[uuid.UUID]*models.PriceSet{}})
	value, err := calc.Calculate(context.Background(), nil, taxedLine(1000, 100, false), enums.CurrencyUSD)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !value.IsZero() {
		t.Fatalf("value = %s, want 0", value)
	}
}
