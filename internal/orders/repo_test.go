package orders

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orderSets := `
CREATE TABLE IF NOT EXISTS order_sets (
  id TEXT PRIMARY KEY,
  display_id INTEGER,
  cart_id TEXT NOT NULL UNIQUE,
  customer_id TEXT NOT NULL,
  sales_channel_id TEXT NOT NULL,
  payment_collection_id TEXT NOT NULL,
  created_at DATETIME
);`
	sellerOrders := `
CREATE TABLE IF NOT EXISTS seller_orders (
  id TEXT PRIMARY KEY,
  order_set_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  cart_id TEXT NOT NULL,
  customer_id TEXT NOT NULL,
  region_id TEXT NOT NULL,
  sales_channel_id TEXT NOT NULL,
  currency TEXT NOT NULL,
  email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  promo_codes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  cart_item_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  product_type_id TEXT NOT NULL DEFAULT '',
  product_category_id TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  item_subtotal NUMERIC NOT NULL,
  item_tax_total NUMERIC NOT NULL,
  item_total NUMERIC NOT NULL,
  is_tax_inclusive INTEGER NOT NULL DEFAULT 0,
  adjustments TEXT,
  tax_lines TEXT,
  created_at DATETIME
);`
	orderShippingMethods := `
CREATE TABLE IF NOT EXISTS order_shipping_methods (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  shipping_option_id TEXT NOT NULL,
  name TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  tax_lines TEXT,
  data TEXT,
  metadata TEXT,
  created_at DATETIME
);`
	splitPayments := `
CREATE TABLE IF NOT EXISTS split_order_payments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE,
  payment_collection_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  authorized_amount NUMERIC NOT NULL,
  captured_amount NUMERIC NOT NULL DEFAULT 0,
  refunded_amount NUMERIC NOT NULL DEFAULT 0,
  currency TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(orderSets).Error)
	require.NoError(t, gdb.Exec(sellerOrders).Error)
	require.NoError(t, gdb.Exec(orderLineItems).Error)
	require.NoError(t, gdb.Exec(orderShippingMethods).Error)
	require.NoError(t, gdb.Exec(splitPayments).Error)
	return gdb
}

func newOrderSet(t *testing.T, gdb *gorm.DB, displayID int64) *models.OrderSet {
	t.Helper()

	set := &models.OrderSet{
		ID:                  uuid.New(),
		DisplayID:           displayID,
		CartID:              uuid.New(),
		CustomerID:          uuid.New(),
		SalesChannelID:      uuid.New(),
		PaymentCollectionID: uuid.New(),
	}
	require.NoError(t, gdb.Create(set).Error)
	return set
}

func newSellerOrder(t *testing.T, gdb *gorm.DB, set *models.OrderSet, itemTotal, shippingAmount decimal.Decimal) *models.SellerOrder {
	t.Helper()

	order := &models.SellerOrder{
		ID:             uuid.New(),
		OrderSetID:     set.ID,
		SellerID:       uuid.New(),
		CartID:         set.CartID,
		CustomerID:     set.CustomerID,
		RegionID:       uuid.New(),
		SalesChannelID: set.SalesChannelID,
		Currency:       enums.CurrencyUSD,
		Email:          "buyer@example.com",
		Status:         enums.OrderStatusPending,
	}
	require.NoError(t, gdb.Create(order).Error)

	item := &models.OrderLineItem{
		ID:           uuid.New(),
		OrderID:      order.ID,
		CartItemID:   uuid.New(),
		ProductID:    uuid.New(),
		VariantID:    uuid.New(),
		Title:        "Test Product",
		Quantity:     1,
		UnitPrice:    itemTotal,
		ItemSubtotal: itemTotal,
		ItemTaxTotal: decimal.Zero,
		ItemTotal:    itemTotal,
	}
	require.NoError(t, gdb.Create(item).Error)

	method := &models.OrderShippingMethod{
		ID:               uuid.New(),
		OrderID:          order.ID,
		ShippingOptionID: uuid.New(),
		Name:             "Standard",
		Amount:           shippingAmount,
	}
	require.NoError(t, gdb.Create(method).Error)
	return order
}

func TestRepositoryOrderSetByCartID(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 101)

	found, err := repo.FindOrderSetByCartID(ctx, set.CartID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, set.ID, found.ID)

	missing, err := repo.FindOrderSetByCartID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryCreateOrderSetDuplicateCart(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 102)

	dup := &models.OrderSet{
		ID:                  uuid.New(),
		DisplayID:           103,
		CartID:              set.CartID,
		CustomerID:          uuid.New(),
		SalesChannelID:      uuid.New(),
		PaymentCollectionID: uuid.New(),
	}
	err := repo.CreateOrderSet(ctx, dup)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestRepositoryFindOrderSetByIDPreloadsOrders(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 104)
	newSellerOrder(t, gdb, set, decimal.NewFromInt(1000), decimal.NewFromInt(50))
	newSellerOrder(t, gdb, set, decimal.NewFromInt(200), decimal.NewFromInt(25))

	found, err := repo.FindOrderSetByID(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, found.Orders, 2)
	for _, order := range found.Orders {
		assert.Len(t, order.Items, 1)
		assert.Len(t, order.ShippingMethods, 1)
	}

	_, err = repo.FindOrderSetByID(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryDeleteOrdersByOrderSet(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 105)
	order := newSellerOrder(t, gdb, set, decimal.NewFromInt(300), decimal.NewFromInt(10))

	require.NoError(t, repo.DeleteOrdersByOrderSet(ctx, set.ID))

	remaining, err := repo.FindOrdersByOrderSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	var itemCount int64
	require.NoError(t, gdb.Model(&models.OrderLineItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestRepositorySplitPayments(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 106)
	order := newSellerOrder(t, gdb, set, decimal.NewFromInt(500), decimal.NewFromInt(20))

	payments := []models.SplitOrderPayment{{
		ID:                  uuid.New(),
		OrderID:             order.ID,
		PaymentCollectionID: set.PaymentCollectionID,
		Status:              enums.SplitPaymentStatusPending,
		AuthorizedAmount:    decimal.NewFromInt(520),
		Currency:            enums.CurrencyUSD,
	}}
	require.NoError(t, repo.CreateSplitPayments(ctx, payments))

	require.NoError(t, repo.DeleteSplitPaymentsByOrders(ctx, []uuid.UUID{order.ID}))

	var count int64
	require.NoError(t, gdb.Model(&models.SplitOrderPayment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSellerOrderAccountingTotal(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	set := newOrderSet(t, gdb, 107)
	order := newSellerOrder(t, gdb, set, decimal.NewFromInt(1000), decimal.NewFromInt(150))

	loaded, err := repo.FindOrderWithItems(ctx, order.ID)
	require.NoError(t, err)

	loaded.ShippingMethods = []models.OrderShippingMethod{{Amount: decimal.NewFromInt(150)}}
	assert.True(t, loaded.AccountingTotal().Equal(decimal.NewFromInt(1150)))
}
