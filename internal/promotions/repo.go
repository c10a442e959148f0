package promotions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
)

// Repository records promotion usage when carts complete.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	RegisterUsage(ctx context.Context, usages []models.PromotionUsage) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	DeleteByCart(ctx context.Context, cartID uuid.UUID) error
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.PromotionUsage, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a promotions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) RegisterUsage(ctx context.Context, usages []models.PromotionUsage) error {
	if len(usages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&usages).Error
}

// DeleteByIDs removes specific usage records. It is the compensation for
// RegisterUsage: scoping by id keeps a concurrent completion's records intact.
func (r *repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.PromotionUsage{}).Error
}

// DeleteByCart removes all of the cart's usage records.
func (r *repository) DeleteByCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.PromotionUsage{}).Error
}

func (r *repository) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.PromotionUsage, error) {
	var usages []models.PromotionUsage
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("code ASC").
		Find(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}
