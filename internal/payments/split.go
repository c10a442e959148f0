package payments

import (
	"github.com/google/uuid"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// BuildSplitPayments slices a cart's shared payment collection across its
// seller orders. Each order gets a pending payment authorized for its
// accounting total, so the authorized amounts across the set sum to the cart's
// order total.
func BuildSplitPayments(orders []models.SellerOrder, paymentCollectionID uuid.UUID) []models.SplitOrderPayment {
	payments := make([]models.SplitOrderPayment, 0, len(orders))
	for _, order := range orders {
		payments = append(payments, models.SplitOrderPayment{
			OrderID:             order.ID,
			PaymentCollectionID: paymentCollectionID,
			Status:              enums.SplitPaymentStatusPending,
			AuthorizedAmount:    order.AccountingTotal(),
			Currency:            order.Currency,
		})
	}
	return payments
}
