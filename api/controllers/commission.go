package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmarquina/sellerhub-backend/api/responses"
	"github.com/dmarquina/sellerhub-backend/api/validators"
	"github.com/dmarquina/sellerhub-backend/internal/commission"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/pagination"
)

type commissionService interface {
	CreateRule(ctx context.Context, input commission.CreateCommissionRuleInput) (*models.CommissionRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	RestoreRule(ctx context.Context, id uuid.UUID) error
	ListRules(ctx context.Context, params pagination.Params) ([]models.CommissionRule, pagination.Metadata, error)
}

func CommissionRuleCreate(svc commissionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		var payload createCommissionRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.CreateRule(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCommissionRuleResponse(rule))
	}
}

func CommissionRuleDelete(svc commissionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "ruleID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule id"))
			return
		}
		if err := svc.DeleteRule(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CommissionRuleRestore(svc commissionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "ruleID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rule id"))
			return
		}
		if err := svc.RestoreRule(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "restored"})
	}
}

func CommissionRuleList(svc commissionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, err := validators.ParseQueryInt(r, "skip", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		take, err := validators.ParseQueryInt(r, "take", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rules, meta, err := svc.ListRules(r.Context(), pagination.Params{Skip: skip, Take: take})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]commissionRuleResponse, 0, len(rules))
		for i := range rules {
			items = append(items, newCommissionRuleResponse(&rules[i]))
		}
		responses.WriteSuccess(w, map[string]any{
			"rules": items,
			"meta":  meta,
		})
	}
}

type createCommissionRuleRequest struct {
	Name        string                      `json:"name" validate:"required"`
	Reference   string                      `json:"reference" validate:"required"`
	ReferenceID string                      `json:"reference_id"`
	Rate        createCommissionRateRequest `json:"rate" validate:"required"`
}

type createCommissionRateRequest struct {
	Type           string          `json:"type" validate:"required,oneof=flat percentage"`
	PercentageRate decimal.Decimal `json:"percentage_rate"`
	IncludeTax     bool            `json:"include_tax"`
	PriceSetID     *uuid.UUID      `json:"price_set_id"`
	MinPriceSetID  *uuid.UUID      `json:"min_price_set_id"`
	MaxPriceSetID  *uuid.UUID      `json:"max_price_set_id"`
}

func (r createCommissionRuleRequest) toInput() commission.CreateCommissionRuleInput {
	return commission.CreateCommissionRuleInput{
		Name:        r.Name,
		Reference:   enums.CommissionRuleReference(r.Reference),
		ReferenceID: r.ReferenceID,
		Rate: commission.CreateCommissionRateInput{
			Type:           enums.CommissionRateType(r.Rate.Type),
			PercentageRate: r.Rate.PercentageRate,
			IncludeTax:     r.Rate.IncludeTax,
			PriceSetID:     r.Rate.PriceSetID,
			MinPriceSetID:  r.Rate.MinPriceSetID,
			MaxPriceSetID:  r.Rate.MaxPriceSetID,
		},
	}
}

type commissionRuleResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Reference   string                  `json:"reference"`
	ReferenceID string                  `json:"reference_id,omitempty"`
	Rate        *commissionRateResponse `json:"rate,omitempty"`
}

type commissionRateResponse struct {
	Type           string          `json:"type"`
	PercentageRate decimal.Decimal `json:"percentage_rate"`
	IncludeTax     bool            `json:"include_tax"`
}

func newCommissionRuleResponse(rule *models.CommissionRule) commissionRuleResponse {
	if rule == nil {
		return commissionRuleResponse{}
	}
	resp := commissionRuleResponse{
		ID:          rule.ID,
		Name:        rule.Name,
		Reference:   string(rule.Reference),
		ReferenceID: rule.ReferenceID,
	}
	if rule.Rate != nil {
		resp.Rate = &commissionRateResponse{
			Type:           string(rule.Rate.Type),
			PercentageRate: rule.Rate.PercentageRate,
			IncludeTax:     rule.Rate.IncludeTax,
		}
	}
	return resp
}
