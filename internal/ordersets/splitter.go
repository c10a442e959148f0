package ordersets

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dmarquina/sellerhub-backend/internal/inventory"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/types"
)

// SplitResult is the outcome of partitioning a cart by seller. Order and line
// item ids are assigned up front so reservations and links can reference them
// before anything is persisted.
type SplitResult struct {
	Orders       []models.SellerOrder
	SellerIDs    []uuid.UUID
	Reservations []inventory.ReservationRequest
}

// ValidateCartSellers checks that every line item's product belongs to a known
// seller. A product with no seller mapping fails the whole cart.
func ValidateCartSellers(cart *models.CartRecord, productSellers map[uuid.UUID]uuid.UUID) error {
	for _, item := range cart.Items {
		if _, ok := productSellers[item.ProductID]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %s has no seller", item.ProductID))
		}
	}
	return nil
}

// ValidateCartShippingOptions checks that every shipping method's option
// belongs to a seller who also has line items in the cart.
func ValidateCartShippingOptions(cart *models.CartRecord, productSellers, shippingOptionSellers map[uuid.UUID]uuid.UUID) error {
	itemSellers := map[uuid.UUID]bool{}
	for _, item := range cart.Items {
		itemSellers[productSellers[item.ProductID]] = true
	}
	for _, method := range cart.ShippingMethods {
		sellerID, ok := shippingOptionSellers[method.ShippingOptionID]
		if !ok || !itemSellers[sellerID] {
			return pkgerrors.New(pkgerrors.CodeValidation, "Seller shipping method not found!")
		}
	}
	return nil
}

// SplitCartBySeller partitions the cart's items and shipping methods into one
// pending order per line-item seller. Input must already have passed the
// Validate functions.
func SplitCartBySeller(cart *models.CartRecord, productSellers, shippingOptionSellers map[uuid.UUID]uuid.UUID) SplitResult {
	type group struct {
		items   []models.CartItem
		methods []models.CartShippingMethod
	}
	groups := map[uuid.UUID]*group{}
	sellerIDs := []uuid.UUID{}

	for _, item := range cart.Items {
		sellerID := productSellers[item.ProductID]
		g, ok := groups[sellerID]
		if !ok {
			g = &group{}
			groups[sellerID] = g
			sellerIDs = append(sellerIDs, sellerID)
		}
		g.items = append(g.items, item)
	}
	for _, method := range cart.ShippingMethods {
		sellerID := shippingOptionSellers[method.ShippingOptionID]
		if g, ok := groups[sellerID]; ok {
			g.methods = append(g.methods, method)
		}
	}

	result := SplitResult{SellerIDs: sellerIDs}
	for _, sellerID := range sellerIDs {
		g := groups[sellerID]
		order := models.SellerOrder{
			ID:             uuid.New(),
			SellerID:       sellerID,
			CartID:         cart.ID,
			CustomerID:     cart.CustomerID,
			RegionID:       cart.RegionID,
			SalesChannelID: cart.SalesChannelID,
			Currency:       cart.Currency,
			Email:          cart.Email,
			Status:         enums.OrderStatusPending,
			PromoCodes:     pq.StringArray(sellerPromoCodes(g.items)),
		}
		for _, item := range g.items {
			lineItemID := uuid.New()
			order.Items = append(order.Items, models.OrderLineItem{
				ID:                lineItemID,
				OrderID:           order.ID,
				CartItemID:        item.ID,
				ProductID:         item.ProductID,
				VariantID:         item.VariantID,
				ProductTypeID:     item.ProductTypeID,
				ProductCategoryID: item.ProductCategoryID,
				Title:             item.Title,
				Quantity:          item.Quantity,
				UnitPrice:         item.UnitPrice,
				ItemSubtotal:      item.ItemSubtotal,
				ItemTaxTotal:      item.ItemTaxTotal,
				ItemTotal:         item.ItemTotal,
				IsTaxInclusive:    item.IsTaxInclusive,
				Adjustments:       item.Adjustments,
				TaxLines:          item.TaxLines,
			})
			result.Reservations = append(result.Reservations, inventory.ReservationRequest{
				VariantID:  item.VariantID,
				LineItemID: lineItemID,
				Quantity:   item.Quantity,
			})
		}
		for _, method := range g.methods {
			order.ShippingMethods = append(order.ShippingMethods, models.OrderShippingMethod{
				ID:               uuid.New(),
				OrderID:          order.ID,
				ShippingOptionID: method.ShippingOptionID,
				Name:             method.Name,
				Amount:           method.Amount,
				TaxLines:         method.TaxLines,
				Data:             method.Data,
				Metadata:         method.Metadata,
			})
		}
		result.Orders = append(result.Orders, order)
	}
	return result
}

func sellerPromoCodes(items []models.CartItem) []string {
	adjustments := []types.LineAdjustment{}
	for _, item := range items {
		adjustments = append(adjustments, item.Adjustments...)
	}
	return types.PromoCodes(adjustments)
}
