package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateSellerOrder OutboxAggregateType = "seller_order"
	AggregateOrderSet    OutboxAggregateType = "order_set"
	AggregateCommission  OutboxAggregateType = "commission"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateSellerOrder,
	AggregateOrderSet,
	AggregateCommission,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventOrderPlaced            OutboxEventType = "order.placed"
	EventOrderSetPlaced         OutboxEventType = "order_set.placed"
	EventCommissionLinesCreated OutboxEventType = "commission.lines_created"
)

var validEventTypes = []OutboxEventType{
	EventOrderPlaced,
	EventOrderSetPlaced,
	EventCommissionLinesCreated,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
