package payloads

import "github.com/google/uuid"

// OrderPlacedEvent announces one split seller order.
type OrderPlacedEvent struct {
	OrderID    uuid.UUID `json:"orderId"`
	OrderSetID uuid.UUID `json:"orderSetId"`
	SellerID   uuid.UUID `json:"sellerId"`
}

// OrderSetPlacedEvent announces a completed cart split.
type OrderSetPlacedEvent struct {
	OrderSetID uuid.UUID   `json:"orderSetId"`
	CartID     uuid.UUID   `json:"cartId"`
	OrderIDs   []uuid.UUID `json:"orderIds"`
}

// CommissionLinesCreatedEvent announces materialized commission lines for an order.
type CommissionLinesCreatedEvent struct {
	OrderID   uuid.UUID `json:"orderId"`
	SellerID  uuid.UUID `json:"sellerId"`
	LineCount int       `json:"lineCount"`
}
