package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

// Repository loads and completes customer carts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartRecord, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	Reopen(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ShippingMethods").
		Where("id = ?", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkCompleted stamps completed_at and flips the status. Reopen is its
// compensation.
func (r *repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       enums.CartStatusCompleted,
			"completed_at": now,
		}).Error
}

func (r *repository) Reopen(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       enums.CartStatusActive,
			"completed_at": nil,
		}).Error
}
