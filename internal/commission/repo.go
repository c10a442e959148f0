package commission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	"github.com/dmarquina/sellerhub-backend/pkg/pagination"
)

// RuleRepository persists commission rules and their rates.
type RuleRepository interface {
	WithTx(tx *gorm.DB) RuleRepository
	FindActiveByReference(ctx context.Context, reference enums.CommissionRuleReference, referenceID string) (*models.CommissionRule, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionRule, error)
	Create(ctx context.Context, rule *models.CommissionRule) (*models.CommissionRule, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params) ([]models.CommissionRule, pagination.Metadata, error)
}

// LineRepository persists materialized commission lines.
type LineRepository interface {
	WithTx(tx *gorm.DB) LineRepository
	BulkCreate(ctx context.Context, lines []models.CommissionLine) error
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CommissionLine, error)
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository builds a rule repository bound to the provided DB.
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) WithTx(tx *gorm.DB) RuleRepository {
	if tx == nil {
		return r
	}
	return &ruleRepository{db: tx}
}

// FindActiveByReference fetches at most one live rule for the reference key,
// rate eagerly loaded. A miss returns (nil, nil): callers treat it as "no
// commission applies", not an error.
func (r *ruleRepository) FindActiveByReference(ctx context.Context, reference enums.CommissionRuleReference, referenceID string) (*models.CommissionRule, error) {
	var rule models.CommissionRule
	err := r.db.WithContext(ctx).
		Preload("Rate").
		Where("reference = ? AND reference_id = ?", reference, referenceID).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CommissionRule, error) {
	var rule models.CommissionRule
	err := r.db.WithContext(ctx).
		Preload("Rate").
		Where("id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule *models.CommissionRule) (*models.CommissionRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *ruleRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CommissionRule{}).Error
}

// Restore clears the soft-delete marker, bringing a deleted rule back. It is
// the compensation for SoftDelete.
func (r *ruleRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&models.CommissionRule{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *ruleRepository) List(ctx context.Context, params pagination.Params) ([]models.CommissionRule, pagination.Metadata, error) {
	params = params.Normalize()
	meta := pagination.Metadata{Skip: params.Skip, Take: params.Take}

	query := r.db.WithContext(ctx).Model(&models.CommissionRule{})
	if err := query.Count(&meta.Count).Error; err != nil {
		return nil, meta, err
	}

	var rules []models.CommissionRule
	err := query.
		Preload("Rate").
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Take).
		Find(&rules).Error
	if err != nil {
		return nil, meta, err
	}
	return rules, meta, nil
}

type lineRepository struct {
	db *gorm.DB
}

// NewLineRepository builds a commission line repository bound to the provided DB.
func NewLineRepository(db *gorm.DB) LineRepository {
	return &lineRepository{db: db}
}

func (r *lineRepository) WithTx(tx *gorm.DB) LineRepository {
	if tx == nil {
		return r
	}
	return &lineRepository{db: tx}
}

func (r *lineRepository) BulkCreate(ctx context.Context, lines []models.CommissionLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *lineRepository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.CommissionLine{}).Error
}

func (r *lineRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CommissionLine, error) {
	var lines []models.CommissionLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
