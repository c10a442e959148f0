package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

// ReservationRequest asks for a hold of Quantity units of a variant on behalf
// of an order line item.
type ReservationRequest struct {
	VariantID  uuid.UUID
	LineItemID uuid.UUID
	Quantity   int
}

// Service reserves and releases variant stock. Reservations are strict: any
// shortfall fails the whole batch.
type Service struct {
	db *gorm.DB
}

// NewService builds an inventory service bound to the provided DB.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("inventory: db is required")
	}
	return &Service{db: db}, nil
}

// WithTx returns a copy of the service bound to the given transaction.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	if tx == nil {
		return s
	}
	return &Service{db: tx}
}

// Reserve places a hold for every request in one transaction. Variants without
// an inventory item or with insufficient available stock fail the batch with a
// NotAllowed error.
func (s *Service) Reserve(ctx context.Context, requests []ReservationRequest) error {
	if len(requests) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, req := range requests {
			if req.Quantity <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "reservation quantity must be positive")
			}

			// Guarded update so concurrent reservations cannot both pass a
			// stale availability read and oversell the variant.
			res := tx.Model(&models.InventoryItem{}).
				Where("variant_id = ? AND available_qty - reserved_qty >= ?", req.VariantID, req.Quantity).
				Update("reserved_qty", gorm.Expr("reserved_qty + ?", req.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var count int64
				err := tx.Model(&models.InventoryItem{}).
					Where("variant_id = ?", req.VariantID).
					Count(&count).Error
				if err != nil {
					return err
				}
				if count == 0 {
					return pkgerrors.New(pkgerrors.CodeNotAllowed,
						fmt.Sprintf("no inventory for variant %s", req.VariantID))
				}
				return pkgerrors.New(pkgerrors.CodeNotAllowed,
					fmt.Sprintf("insufficient stock for variant %s", req.VariantID))
			}

			reservation := models.InventoryReservation{
				VariantID:  req.VariantID,
				LineItemID: req.LineItemID,
				Quantity:   req.Quantity,
			}
			if err := tx.Create(&reservation).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Release drops the holds for the given line items and returns the quantities
// to the available pool. Missing reservations are skipped so the call stays
// safe to run as a compensation.
func (s *Service) Release(ctx context.Context, lineItemIDs []uuid.UUID) error {
	if len(lineItemIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservations []models.InventoryReservation
		err := tx.Where("line_item_id IN ?", lineItemIDs).Find(&reservations).Error
		if err != nil {
			return err
		}
		for _, res := range reservations {
			err = tx.Model(&models.InventoryItem{}).
				Where("variant_id = ?", res.VariantID).
				Update("reserved_qty", gorm.Expr("reserved_qty - ?", res.Quantity)).Error
			if err != nil {
				return err
			}
			if err := tx.Delete(&models.InventoryReservation{}, "id = ?", res.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveItem deletes an inventory item. Items with open reservations cannot
// be removed.
func (s *Service) RemoveItem(ctx context.Context, variantID uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("variant_id = ?", variantID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeNotAllowed,
			"cannot remove inventory item with open reservations")
	}
	return s.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Delete(&models.InventoryItem{}).Error
}
