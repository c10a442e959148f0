package commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox/payloads"
	"github.com/dmarquina/sellerhub-backend/pkg/pagination"
)

// errLinesAlreadyMaterialized signals that another delivery of the same order
// event created the lines first; the unique (item_line_id, rule_id) key
// rejected ours.
var errLinesAlreadyMaterialized = errors.New("commission lines already materialized")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderLoader interface {
	FindOrderWithItems(ctx context.Context, orderID uuid.UUID) (*models.SellerOrder, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service owns commission rule administration and commission line
// materialization for orders.
type Service struct {
	tx         txRunner
	rules      RuleRepository
	lines      LineRepository
	resolver   *Resolver
	calculator *Calculator
	orders     orderLoader
	events     eventEmitter
	validate   *validator.Validate
	logg       *logger.Logger
}

// ServiceParams collects the service dependencies.
type ServiceParams struct {
	Tx         txRunner
	Rules      RuleRepository
	Lines      LineRepository
	Resolver   *Resolver
	Calculator *Calculator
	Orders     orderLoader
	Events     eventEmitter
	Logger     *logger.Logger
}

// NewService builds the commission service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Rules == nil {
		return nil, fmt.Errorf("rule repository required")
	}
	if params.Lines == nil {
		return nil, fmt.Errorf("line repository required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	if params.Calculator == nil {
		return nil, fmt.Errorf("calculator required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	return &Service{
		tx:         params.Tx,
		rules:      params.Rules,
		lines:      params.Lines,
		resolver:   params.Resolver,
		calculator: params.Calculator,
		orders:     params.Orders,
		events:     params.Events,
		validate:   validator.New(),
		logg:       params.Logger,
	}, nil
}

// CreateRule creates a rule plus its rate after checking no live rule already
// targets the same (reference, reference_id) key.
func (s *Service) CreateRule(ctx context.Context, input CreateCommissionRuleInput) (*models.CommissionRule, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid commission rule input")
	}
	if !input.Reference.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid commission rule reference %q", input.Reference))
	}
	if input.Rate.Type == enums.CommissionRatePercentage {
		if input.Rate.PercentageRate.IsNegative() || input.Rate.PercentageRate.GreaterThan(oneHundred) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage rate must be between 0 and 100")
		}
	}

	var created *models.CommissionRule
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rules := s.rules.WithTx(tx)

		existing, err := rules.FindActiveByReference(ctx, input.Reference, input.ReferenceID)
		if err != nil {
			return err
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "Rule already exists!")
		}

		rule := &models.CommissionRule{
			Name:        input.Name,
			Reference:   input.Reference,
			ReferenceID: input.ReferenceID,
			Rate: &models.CommissionRate{
				Type:           input.Rate.Type,
				PercentageRate: input.Rate.PercentageRate,
				IncludeTax:     input.Rate.IncludeTax,
				PriceSetID:     input.Rate.PriceSetID,
				MinPriceSetID:  input.Rate.MinPriceSetID,
				MaxPriceSetID:  input.Rate.MaxPriceSetID,
			},
		}
		created, err = rules.Create(ctx, rule)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteRule soft-deletes a rule. RestoreRule is its compensation.
func (s *Service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.rules.SoftDelete(ctx, id)
}

// RestoreRule brings back a soft-deleted rule.
func (s *Service) RestoreRule(ctx context.Context, id uuid.UUID) error {
	return s.rules.Restore(ctx, id)
}

// ListRules returns a page of rules with their rates.
func (s *Service) ListRules(ctx context.Context, params pagination.Params) ([]models.CommissionRule, pagination.Metadata, error) {
	return s.rules.List(ctx, params)
}

// CalculateCommissionForOrder materializes commission lines for every order
// line that matches a rule. Lines with no matching rule are skipped, never an
// error. The whole batch persists in one create; resolution and calculation
// are pure reads, so the create is the only step that needs compensation
// (DeleteCommissionLinesForOrder).
func (s *Service) CalculateCommissionForOrder(ctx context.Context, orderID, sellerID uuid.UUID) ([]models.CommissionLine, error) {
	order, err := s.orders.FindOrderWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.CommissionLine, 0, len(order.Items))
	for _, item := range order.Items {
		rule, err := s.resolver.Resolve(ctx, RuleContext{
			SellerID:          sellerID.String(),
			ProductTypeID:     item.ProductTypeID,
			ProductCategoryID: item.ProductCategoryID,
		})
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}

		value, err := s.calculator.Calculate(ctx, rule.Rate, item, order.Currency)
		if err != nil {
			return nil, err
		}
		pending = append(pending, models.CommissionLine{
			OrderID:    orderID,
			ItemLineID: item.ID,
			RuleID:     rule.ID,
			Currency:   order.Currency,
			Value:      value,
		})
	}

	if len(pending) == 0 {
		return nil, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.lines.WithTx(tx).BulkCreate(ctx, pending); err != nil {
			if db.IsUniqueViolation(err, "") {
				return errLinesAlreadyMaterialized
			}
			return err
		}
		if s.events == nil {
			return nil
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventCommissionLinesCreated,
			AggregateType: enums.AggregateCommission,
			AggregateID:   orderID,
			Data: payloads.CommissionLinesCreatedEvent{
				OrderID:   orderID,
				SellerID:  sellerID,
				LineCount: len(pending),
			},
			Version: 1,
		})
	})
	if errors.Is(err, errLinesAlreadyMaterialized) {
		// A concurrent delivery won the race; its lines are the record.
		return s.lines.ListByOrder(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		fields := map[string]any{"order_id": orderID.String(), "line_count": len(pending)}
		s.logg.Info(s.logg.WithFields(ctx, fields), "commission lines created")
	}
	return pending, nil
}

// DeleteCommissionLinesForOrder removes an order's commission lines. It is the
// compensation for CalculateCommissionForOrder's create step.
func (s *Service) DeleteCommissionLinesForOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.lines.DeleteByOrder(ctx, orderID)
}

// CommissionLinesForOrder lists the materialized lines for an order.
func (s *Service) CommissionLinesForOrder(ctx context.Context, orderID uuid.UUID) ([]models.CommissionLine, error) {
	return s.lines.ListByOrder(ctx, orderID)
}
