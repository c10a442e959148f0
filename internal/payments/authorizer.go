package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
)

// CollectionAuthorizer checks the cart's payment collection before the split
// runs. Capturing or voiding funds against a gateway happens elsewhere; this
// guard only refuses carts that could never settle.
type CollectionAuthorizer struct {
	logg *logger.Logger
}

func NewCollectionAuthorizer(logg *logger.Logger) *CollectionAuthorizer {
	return &CollectionAuthorizer{logg: logg}
}

func (a *CollectionAuthorizer) AuthorizeCartPayment(ctx context.Context, record *models.CartRecord) error {
	if record == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	if record.PaymentCollectionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeNotAllowed, "cart has no payment collection")
	}

	total := decimal.Zero
	for _, item := range record.Items {
		total = total.Add(item.ItemTotal)
	}
	for _, method := range record.ShippingMethods {
		total = total.Add(method.Amount)
	}
	if !total.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeNotAllowed, "cart total must be positive")
	}

	if a.logg != nil {
		ctx = a.logg.WithFields(ctx, map[string]any{
			"payment_collection_id": record.PaymentCollectionID.String(),
			"cart_total":            total.String(),
		})
		a.logg.Debug(ctx, "cart payment collection authorized")
	}
	return nil
}
