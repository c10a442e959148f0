package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
)

func TestAuthorizeCartPayment(t *testing.T) {
	t.Parallel()

	auth := NewCollectionAuthorizer(nil)
	record := &models.CartRecord{
		PaymentCollectionID: uuid.New(),
		Items: []models.CartItem{
			{ItemTotal: decimal.NewFromInt(500)},
		},
		ShippingMethods: []models.CartShippingMethod{
			{Amount: decimal.NewFromInt(50)},
		},
	}

	if err := auth.AuthorizeCartPayment(context.Background(), record); err != nil {
		t.Fatalf("AuthorizeCartPayment: %v", err)
	}
}

func TestAuthorizeCartPaymentMissingCollection(t *testing.T) {
	t.Parallel()

	auth := NewCollectionAuthorizer(nil)
	record := &models.CartRecord{
		Items: []models.CartItem{{ItemTotal: decimal.NewFromInt(500)}},
	}

	err := auth.AuthorizeCartPayment(context.Background(), record)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed) {
		t.Fatalf("expected NOT_ALLOWED, got %v", err)
	}
}

func TestAuthorizeCartPaymentZeroTotal(t *testing.T) {
	t.Parallel()

	auth := NewCollectionAuthorizer(nil)
	record := &models.CartRecord{PaymentCollectionID: uuid.New()}

	err := auth.AuthorizeCartPayment(context.Background(), record)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotAllowed) {
		t.Fatalf("expected NOT_ALLOWED, got %v", err)
	}
}
