package inventory

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL UNIQUE,
  available_qty INTEGER NOT NULL DEFAULT 0,
  reserved_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	reservations := `
CREATE TABLE IF NOT EXISTS inventory_reservations (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  line_item_id TEXT NOT NULL UNIQUE,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, gdb.Exec(items).Error)
	require.NoError(t, gdb.Exec(reservations).Error)
	return gdb
}

func newInventoryItem(t *testing.T, gdb *gorm.DB, available, reserved int) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		ID:           uuid.New(),
		VariantID:    uuid.New(),
		AvailableQty: available,
		ReservedQty:  reserved,
	}
	require.NoError(t, gdb.Create(item).Error)
	return item
}

func newReservation(t *testing.T, gdb *gorm.DB, variantID uuid.UUID, qty int) *models.InventoryReservation {
	t.Helper()

	res := &models.InventoryReservation{
		ID:         uuid.New(),
		VariantID:  variantID,
		LineItemID: uuid.New(),
		Quantity:   qty,
	}
	require.NoError(t, gdb.Create(res).Error)
	return res
}

func TestServiceReserveAndRelease(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)
	ctx := context.Background()

	item := newInventoryItem(t, gdb, 10, 0)
	lineItemID := uuid.New()

	err = svc.Reserve(ctx, []ReservationRequest{{
		VariantID:  item.VariantID,
		LineItemID: lineItemID,
		Quantity:   4,
	}})
	require.NoError(t, err)

	var reloaded models.InventoryItem
	require.NoError(t, gdb.Where("id = ?", item.ID).First(&reloaded).Error)
	assert.Equal(t, 4, reloaded.ReservedQty)

	require.NoError(t, svc.Release(ctx, []uuid.UUID{lineItemID}))
	require.NoError(t, gdb.Where("id = ?", item.ID).First(&reloaded).Error)
	assert.Equal(t, 0, reloaded.ReservedQty)

	var count int64
	require.NoError(t, gdb.Model(&models.InventoryReservation{}).Where("line_item_id = ?", lineItemID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceReserveInsufficientStock(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)
	ctx := context.Background()

	item := newInventoryItem(t, gdb, 5, 3)

	err = svc.Reserve(ctx, []ReservationRequest{{
		VariantID:  item.VariantID,
		LineItemID: uuid.New(),
		Quantity:   3,
	}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed))
}

func TestServiceReserveGuardsAgainstOversell(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)
	ctx := context.Background()

	item := newInventoryItem(t, gdb, 10, 0)

	err = svc.Reserve(ctx, []ReservationRequest{{
		VariantID:  item.VariantID,
		LineItemID: uuid.New(),
		Quantity:   6,
	}})
	require.NoError(t, err)

	// A second hold sized against the original availability must be rejected
	// by the conditional update, not admitted off a stale read.
	err = svc.Reserve(ctx, []ReservationRequest{{
		VariantID:  item.VariantID,
		LineItemID: uuid.New(),
		Quantity:   6,
	}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed))

	var reloaded models.InventoryItem
	require.NoError(t, gdb.Where("id = ?", item.ID).First(&reloaded).Error)
	assert.Equal(t, 6, reloaded.ReservedQty)

	var count int64
	require.NoError(t, gdb.Model(&models.InventoryReservation{}).Where("variant_id = ?", item.VariantID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestServiceReserveUnknownVariant(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)

	err = svc.Reserve(context.Background(), []ReservationRequest{{
		VariantID:  uuid.New(),
		LineItemID: uuid.New(),
		Quantity:   1,
	}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed))
}

func TestServiceRemoveItemWithReservations(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)
	ctx := context.Background()

	item := newInventoryItem(t, gdb, 10, 2)
	newReservation(t, gdb, item.VariantID, 2)

	err = svc.RemoveItem(ctx, item.VariantID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed))

	var count int64
	require.NoError(t, gdb.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestServiceRemoveItemWithoutReservations(t *testing.T) {
	gdb := setupInventoryTestDB(t)
	svc, err := NewService(gdb)
	require.NoError(t, err)

	item := newInventoryItem(t, gdb, 10, 0)
	require.NoError(t, svc.RemoveItem(context.Background(), item.VariantID))

	var count int64
	require.NoError(t, gdb.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Zero(t, count)
}
