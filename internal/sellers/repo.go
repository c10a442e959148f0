package sellers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
)

// Repository resolves product and shipping-option ownership for sellers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ProductSellerMap(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
	ShippingOptionSellerMap(ctx context.Context, optionIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sellers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ProductSellerMap maps each product id to its owning seller. Products with no
// seller link are simply absent from the map.
func (r *repository) ProductSellerMap(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]uuid.UUID{}, nil
	}
	var links []models.SellerProduct
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]uuid.UUID, len(links))
	for _, link := range links {
		result[link.ProductID] = link.SellerID
	}
	return result, nil
}

// ShippingOptionSellerMap maps each shipping option id to its owning seller.
func (r *repository) ShippingOptionSellerMap(ctx context.Context, optionIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	if len(optionIDs) == 0 {
		return map[uuid.UUID]uuid.UUID{}, nil
	}
	var links []models.SellerShippingOption
	err := r.db.WithContext(ctx).
		Where("shipping_option_id IN ?", optionIDs).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]uuid.UUID, len(links))
	for _, link := range links {
		result[link.ShippingOptionID] = link.SellerID
	}
	return result, nil
}
