package pricing

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	priceSets := `
CREATE TABLE IF NOT EXISTS price_sets (
  id TEXT PRIMARY KEY,
  created_at DATETIME
);`
	prices := `
CREATE TABLE IF NOT EXISTS prices (
  id TEXT PRIMARY KEY,
  price_set_id TEXT NOT NULL,
  currency TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, gdb.Exec(priceSets).Error)
	require.NoError(t, gdb.Exec(prices).Error)

	t.Cleanup(func() {
		gdb.Exec("DELETE FROM prices")
		gdb.Exec("DELETE FROM price_sets")
	})

	return gdb
}

func TestRetrievePriceSetWithPrices(t *testing.T) {
	gdb := setupPricingTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := &models.PriceSet{
		ID: uuid.New(),
		Prices: []models.Price{
			{ID: uuid.New(), Currency: enums.CurrencyUSD, Amount: decimal.NewFromInt(50)},
			{ID: uuid.New(), Currency: enums.CurrencyEUR, Amount: decimal.NewFromInt(45)},
		},
	}
	_, err := repo.CreatePriceSet(ctx, set)
	require.NoError(t, err)

	found, err := repo.RetrievePriceSet(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, found.Prices, 2)

	amount, ok := found.AmountFor(enums.CurrencyUSD)
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromInt(50)))

	_, ok = found.AmountFor(enums.Currency("gbp"))
	assert.False(t, ok)
}

func TestRetrievePriceSetNotFound(t *testing.T) {
	gdb := setupPricingTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.RetrievePriceSet(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
