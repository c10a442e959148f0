package promotions

import (
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/types"
)

// ComputeUsage aggregates the cart's item and shipping adjustments into one
// usage record per promotion code. Codeless adjustments are ignored.
func ComputeUsage(cart *models.CartRecord) []models.PromotionUsage {
	totals := map[string]decimal.Decimal{}
	order := []string{}
	record := func(adjustments []types.LineAdjustment) {
		for _, adj := range adjustments {
			if adj.Code == "" {
				continue
			}
			if _, seen := totals[adj.Code]; !seen {
				order = append(order, adj.Code)
			}
			totals[adj.Code] = totals[adj.Code].Add(adj.Amount)
		}
	}
	for _, item := range cart.Items {
		record(item.Adjustments)
	}
	for _, method := range cart.ShippingMethods {
		record(method.Adjustments)
	}

	usages := make([]models.PromotionUsage, 0, len(order))
	for _, code := range order {
		usages = append(usages, models.PromotionUsage{
			CartID: cart.ID,
			Code:   code,
			Amount: totals[code],
		})
	}
	return usages
}
