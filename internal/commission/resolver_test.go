package commission

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
)

type stubRuleFinder struct {
	rules map[string]*models.CommissionRule
}

func (s *stubRuleFinder) FindActiveByReference(ctx context.Context, reference enums.CommissionRuleReference, referenceID string) (*models.CommissionRule, error) {
	return s.rules[ruleKey(reference, referenceID)], nil
}

func ruleKey(reference enums.CommissionRuleReference, referenceID string) string {
	return fmt.Sprintf("%s|%s", reference, referenceID)
}

func namedRule(name string) *models.CommissionRule {
	return &models.CommissionRule{ID: uuid.New(), Name: name}
}

func TestResolverMostSpecificWins(t *testing.T) {
	t.Parallel()

	rctx := RuleContext{SellerID: "sel_1", ProductTypeID: "ptyp_1", ProductCategoryID: "pcat_1"}
	finder := &stubRuleFinder{rules: map[string]*models.CommissionRule{
		ruleKey(enums.ReferenceSellerProductType, "sel_1+ptyp_1"): namedRule("seller-type"),
		ruleKey(enums.ReferenceSeller, "sel_1"):                   namedRule("seller"),
		ruleKey(enums.ReferenceSite, ""):                          namedRule("site"),
	}}
	resolver := NewResolver(finder)

	rule, err := resolver.Resolve(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rule == nil || rule.Name != "seller-type" {
		t.Fatalf("expected seller-type rule, got %+v", rule)
	}
}

func TestResolverFallsThroughInOrder(t *testing.T) {
	t.Parallel()

	rctx := RuleContext{SellerID: "sel_1", ProductTypeID: "ptyp_1", ProductCategoryID: "pcat_1"}
	rules := map[string]*models.CommissionRule{
		ruleKey(enums.ReferenceSellerProductType, "sel_1+ptyp_1"):     namedRule("seller-type"),
		ruleKey(enums.ReferenceSellerProductCategory, "sel_1+pcat_1"): namedRule("seller-category"),
		ruleKey(enums.ReferenceSeller, "sel_1"):                       namedRule("seller"),
		ruleKey(enums.ReferenceProductType, "ptyp_1"):                 namedRule("type"),
		ruleKey(enums.ReferenceProductCategory, "pcat_1"):             namedRule("category"),
		ruleKey(enums.ReferenceSite, ""):                              namedRule("site"),
	}
	finder := &stubRuleFinder{rules: rules}
	resolver := NewResolver(finder)

	expected := []string{"seller-type", "seller-category", "seller", "type", "category", "site"}
	for _, want := range expected {
		rule, err := resolver.Resolve(context.Background(), rctx)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if rule == nil || rule.Name != want {
			t.Fatalf("expected %q, got %+v", want, rule)
		}
		for key, candidate := range rules {
			if candidate != nil && candidate.Name == want {
				delete(rules, key)
			}
		}
	}
}

func TestResolverNoMatch(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubRuleFinder{rules: map[string]*models.CommissionRule{}})
	rule, err := resolver.Resolve(context.Background(), RuleContext{SellerID: "sel_1"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected no rule, got %+v", rule)
	}
}
