package enums

import "fmt"

// SplitPaymentStatus tracks the per-order slice of a shared payment collection.
type SplitPaymentStatus string

const (
	SplitPaymentStatusPending    SplitPaymentStatus = "pending"
	SplitPaymentStatusAuthorized SplitPaymentStatus = "authorized"
	SplitPaymentStatusCaptured   SplitPaymentStatus = "captured"
	SplitPaymentStatusRefunded   SplitPaymentStatus = "refunded"
)

var validSplitPaymentStatuses = []SplitPaymentStatus{
	SplitPaymentStatusPending,
	SplitPaymentStatusAuthorized,
	SplitPaymentStatusCaptured,
	SplitPaymentStatusRefunded,
}

// String implements fmt.Stringer.
func (s SplitPaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SplitPaymentStatus.
func (s SplitPaymentStatus) IsValid() bool {
	for _, candidate := range validSplitPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSplitPaymentStatus converts raw input into a SplitPaymentStatus.
func ParseSplitPaymentStatus(value string) (SplitPaymentStatus, error) {
	for _, candidate := range validSplitPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid split payment status %q", value)
}
