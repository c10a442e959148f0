package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarquina/sellerhub-backend/api/responses"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
)

type cartCompleter interface {
	CompleteCart(ctx context.Context, cartID uuid.UUID) (*models.OrderSet, error)
}

type orderSetLoader interface {
	FindOrderSetByID(ctx context.Context, id uuid.UUID) (*models.OrderSet, error)
}

// CartComplete runs the cart completion workflow. Replays for an already
// completed cart return the existing order set with a 200.
func CartComplete(workflow cartCompleter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if workflow == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart workflow unavailable"))
			return
		}

		cartID, err := uuid.Parse(chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart id"))
			return
		}

		set, err := workflow.CompleteCart(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderSetResponse(set))
	}
}

func OrderSetByID(repo orderSetLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order repository unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "orderSetID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order set id"))
			return
		}

		set, err := repo.FindOrderSetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderSetResponse(set))
	}
}

type orderSetResponse struct {
	ID                  uuid.UUID             `json:"id"`
	DisplayID           int64                 `json:"display_id"`
	CartID              uuid.UUID             `json:"cart_id"`
	CustomerID          uuid.UUID             `json:"customer_id"`
	PaymentCollectionID uuid.UUID             `json:"payment_collection_id"`
	Orders              []sellerOrderResponse `json:"orders"`
}

type sellerOrderResponse struct {
	ID         uuid.UUID `json:"id"`
	SellerID   uuid.UUID `json:"seller_id"`
	Status     string    `json:"status"`
	Currency   string    `json:"currency"`
	ItemCount  int       `json:"item_count"`
	Total      string    `json:"total"`
	PromoCodes []string  `json:"promo_codes,omitempty"`
}

func newOrderSetResponse(set *models.OrderSet) orderSetResponse {
	if set == nil {
		return orderSetResponse{}
	}

	resp := orderSetResponse{
		ID:                  set.ID,
		DisplayID:           set.DisplayID,
		CartID:              set.CartID,
		CustomerID:          set.CustomerID,
		PaymentCollectionID: set.PaymentCollectionID,
		Orders:              make([]sellerOrderResponse, 0, len(set.Orders)),
	}
	for _, order := range set.Orders {
		resp.Orders = append(resp.Orders, sellerOrderResponse{
			ID:         order.ID,
			SellerID:   order.SellerID,
			Status:     string(order.Status),
			Currency:   string(order.Currency),
			ItemCount:  len(order.Items),
			Total:      order.AccountingTotal().String(),
			PromoCodes: order.PromoCodes,
		})
	}
	return resp
}
