package enums

import "fmt"

// CommissionRateType distinguishes flat-amount rates from percentage rates.
type CommissionRateType string

const (
	CommissionRateFlat       CommissionRateType = "flat"
	CommissionRatePercentage CommissionRateType = "percentage"
)

var validCommissionRateTypes = []CommissionRateType{
	CommissionRateFlat,
	CommissionRatePercentage,
}

// String implements fmt.Stringer.
func (t CommissionRateType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CommissionRateType.
func (t CommissionRateType) IsValid() bool {
	for _, candidate := range validCommissionRateTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// CommissionRuleReference names the targeting key a commission rule matches on.
type CommissionRuleReference string

const (
	ReferenceSellerProductType     CommissionRuleReference = "seller+product_type"
	ReferenceSellerProductCategory CommissionRuleReference = "seller+product_category"
	ReferenceSeller                CommissionRuleReference = "seller"
	ReferenceProductType           CommissionRuleReference = "product_type"
	ReferenceProductCategory       CommissionRuleReference = "product_category"
	ReferenceSite                  CommissionRuleReference = "site"
)

var validCommissionRuleReferences = []CommissionRuleReference{
	ReferenceSellerProductType,
	ReferenceSellerProductCategory,
	ReferenceSeller,
	ReferenceProductType,
	ReferenceProductCategory,
	ReferenceSite,
}

// String implements fmt.Stringer.
func (r CommissionRuleReference) String() string {
	return string(r)
}

// IsValid reports whether the value is a known CommissionRuleReference.
func (r CommissionRuleReference) IsValid() bool {
	for _, candidate := range validCommissionRuleReferences {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseCommissionRuleReference converts raw input into a CommissionRuleReference.
func ParseCommissionRuleReference(value string) (CommissionRuleReference, error) {
	for _, candidate := range validCommissionRuleReferences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission rule reference %q", value)
}
