package commission

import (
	"context"
	"fmt"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

// RuleContext identifies the line being priced for commission.
type RuleContext struct {
	SellerID          string
	ProductTypeID     string
	ProductCategoryID string
}

type ruleFinder interface {
	FindActiveByReference(ctx context.Context, reference enums.CommissionRuleReference, referenceID string) (*models.CommissionRule, error)
}

// Resolver finds the single best-matching commission rule for a context.
type Resolver struct {
	rules ruleFinder
}

// NewResolver builds a resolver over the given rule store.
func NewResolver(rules ruleFinder) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve tries a fixed priority list of reference keys, most specific first,
// and returns the first rule that matches. The site-wide rule (empty reference
// id) is the final fallback. A nil result with nil error means no commission
// applies to this context.
func (r *Resolver) Resolve(ctx context.Context, rctx RuleContext) (*models.CommissionRule, error) {
	lookups := []struct {
		reference   enums.CommissionRuleReference
		referenceID string
	}{
		{enums.ReferenceSellerProductType, fmt.Sprintf("%s+%s", rctx.SellerID, rctx.ProductTypeID)},
		{enums.ReferenceSellerProductCategory, fmt.Sprintf("%s+%s", rctx.SellerID, rctx.ProductCategoryID)},
		{enums.ReferenceSeller, rctx.SellerID},
		{enums.ReferenceProductType, rctx.ProductTypeID},
		{enums.ReferenceProductCategory, rctx.ProductCategoryID},
		{enums.ReferenceSite, ""},
	}

	for _, lookup := range lookups {
		rule, err := r.rules.FindActiveByReference(ctx, lookup.reference, lookup.referenceID)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			return rule, nil
		}
	}
	return nil, nil
}
