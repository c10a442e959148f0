package pricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

// Repository loads price sets with their currency-keyed prices.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	RetrievePriceSet(ctx context.Context, id uuid.UUID) (*models.PriceSet, error)
	CreatePriceSet(ctx context.Context, set *models.PriceSet) (*models.PriceSet, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) RetrievePriceSet(ctx context.Context, id uuid.UUID) (*models.PriceSet, error) {
	var set models.PriceSet
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("id = ?", id).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price set not found")
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *repository) CreatePriceSet(ctx context.Context, set *models.PriceSet) (*models.PriceSet, error) {
	if err := r.db.WithContext(ctx).Create(set).Error; err != nil {
		return nil, err
	}
	return set, nil
}
