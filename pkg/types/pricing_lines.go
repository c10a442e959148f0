package types

import "github.com/shopspring/decimal"

// LineAdjustment captures a promotion discount applied to a cart or order line.
type LineAdjustment struct {
	PromotionID string          `json:"promotionId,omitempty"`
	Code        string          `json:"code,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxLine captures a single tax applied to a line item or shipping method.
type TaxLine struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
	Tax  decimal.Decimal `json:"tax"`
}

// PromoCodes collects the distinct promotion codes found in a set of adjustments.
func PromoCodes(adjustments []LineAdjustment) []string {
	seen := make(map[string]struct{}, len(adjustments))
	codes := make([]string, 0, len(adjustments))
	for _, adj := range adjustments {
		if adj.Code == "" {
			continue
		}
		if _, ok := seen[adj.Code]; ok {
			continue
		}
		seen[adj.Code] = struct{}{}
		codes = append(codes, adj.Code)
	}
	return codes
}
