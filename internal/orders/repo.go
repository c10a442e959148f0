package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

// Repository persists order sets, seller orders and their split payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrderSet(ctx context.Context, set *models.OrderSet) error
	FindOrderSetByCartID(ctx context.Context, cartID uuid.UUID) (*models.OrderSet, error)
	FindOrderSetByID(ctx context.Context, id uuid.UUID) (*models.OrderSet, error)
	DeleteOrderSet(ctx context.Context, id uuid.UUID) error
	CreateSellerOrders(ctx context.Context, orders []models.SellerOrder) error
	DeleteOrdersByOrderSet(ctx context.Context, orderSetID uuid.UUID) error
	FindOrdersByOrderSet(ctx context.Context, orderSetID uuid.UUID) ([]models.SellerOrder, error)
	FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.SellerOrder, error)
	CreateSplitPayments(ctx context.Context, payments []models.SplitOrderPayment) error
	DeleteSplitPaymentsByOrders(ctx context.Context, orderIDs []uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrderSet(ctx context.Context, set *models.OrderSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

// FindOrderSetByCartID returns (nil, nil) when the cart has no order set yet.
func (r *repository) FindOrderSetByCartID(ctx context.Context, cartID uuid.UUID) (*models.OrderSet, error) {
	var set models.OrderSet
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *repository) FindOrderSetByID(ctx context.Context, id uuid.UUID) (*models.OrderSet, error) {
	var set models.OrderSet
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Preload("Orders.Items").
		Preload("Orders.ShippingMethods").
		Preload("Orders.SplitPayment").
		Where("id = ?", id).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order set not found")
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *repository) DeleteOrderSet(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.OrderSet{}).Error
}

func (r *repository) CreateSellerOrders(ctx context.Context, orders []models.SellerOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&orders).Error
}

func (r *repository) DeleteOrdersByOrderSet(ctx context.Context, orderSetID uuid.UUID) error {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.SellerOrder{}).
		Where("order_set_id = ?", orderSetID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	// Children first for stores without cascading deletes (sqlite in tests).
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Delete(&models.OrderLineItem{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Delete(&models.OrderShippingMethod{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("order_set_id = ?", orderSetID).
		Delete(&models.SellerOrder{}).Error
}

func (r *repository) FindOrdersByOrderSet(ctx context.Context, orderSetID uuid.UUID) ([]models.SellerOrder, error) {
	var orders []models.SellerOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ShippingMethods").
		Where("order_set_id = ?", orderSetID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.SellerOrder, error) {
	var order models.SellerOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) CreateSplitPayments(ctx context.Context, payments []models.SplitOrderPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *repository) DeleteSplitPaymentsByOrders(ctx context.Context, orderIDs []uuid.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Delete(&models.SplitOrderPayment{}).Error
}
