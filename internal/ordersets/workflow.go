package ordersets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarquina/sellerhub-backend/internal/cart"
	"github.com/dmarquina/sellerhub-backend/internal/inventory"
	"github.com/dmarquina/sellerhub-backend/internal/orders"
	"github.com/dmarquina/sellerhub-backend/internal/payments"
	"github.com/dmarquina/sellerhub-backend/internal/promotions"
	"github.com/dmarquina/sellerhub-backend/internal/sellers"
	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/metrics"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox/payloads"
	"github.com/dmarquina/sellerhub-backend/pkg/saga"
)

const workflowName = "complete-cart"

// errCartAlreadySplit signals that another completion won the unique cart_id
// race while this run was in flight.
var errCartAlreadySplit = errors.New("cart already split")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PaymentAuthorizer validates and authorizes the cart's payment collection
// before any order is created. Authorization has no compensation here; voiding
// a gateway hold is the gateway integration's concern.
type PaymentAuthorizer interface {
	AuthorizeCartPayment(ctx context.Context, cart *models.CartRecord) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	DeleteByAggregate(tx *gorm.DB, aggregateType string, aggregateID uuid.UUID) error
}

type stockReserver interface {
	Reserve(ctx context.Context, requests []inventory.ReservationRequest) error
	Release(ctx context.Context, lineItemIDs []uuid.UUID) error
}

// WorkflowParams carries the collaborators CompleteCart needs.
type WorkflowParams struct {
	TxRunner   txRunner
	Carts      cart.Repository
	Sellers    sellers.Repository
	Orders     orders.Repository
	Promotions promotions.Repository
	Inventory  stockReserver
	Events     eventEmitter
	Payments   PaymentAuthorizer
	Lock       *CartLock
	Metrics    *metrics.WorkflowMetrics
	Logger     *logger.Logger
}

// Workflow turns an active multi-seller cart into an order set with one order
// per seller, as a compensating saga.
type Workflow struct {
	tx         txRunner
	carts      cart.Repository
	sellerRepo sellers.Repository
	orderRepo  orders.Repository
	promoRepo  promotions.Repository
	inventory  stockReserver
	events     eventEmitter
	payments   PaymentAuthorizer
	lock       *CartLock
	runner     *saga.Runner
	metrics    *metrics.WorkflowMetrics
	logg       *logger.Logger
}

// NewWorkflow validates the required collaborators and builds the workflow.
// Lock and Metrics are optional.
func NewWorkflow(params WorkflowParams) (*Workflow, error) {
	switch {
	case params.TxRunner == nil:
		return nil, errors.New("ordersets: tx runner is required")
	case params.Carts == nil:
		return nil, errors.New("ordersets: cart repository is required")
	case params.Sellers == nil:
		return nil, errors.New("ordersets: sellers repository is required")
	case params.Orders == nil:
		return nil, errors.New("ordersets: orders repository is required")
	case params.Promotions == nil:
		return nil, errors.New("ordersets: promotions repository is required")
	case params.Inventory == nil:
		return nil, errors.New("ordersets: inventory service is required")
	case params.Events == nil:
		return nil, errors.New("ordersets: event emitter is required")
	case params.Payments == nil:
		return nil, errors.New("ordersets: payment authorizer is required")
	}
	return &Workflow{
		tx:         params.TxRunner,
		carts:      params.Carts,
		sellerRepo: params.Sellers,
		orderRepo:  params.Orders,
		promoRepo:  params.Promotions,
		inventory:  params.Inventory,
		events:     params.Events,
		payments:   params.Payments,
		lock:       params.Lock,
		runner:     saga.NewRunner(params.Logger),
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

// CompleteCart splits the cart into per-seller orders under one order set.
// Reruns for an already completed cart return the existing order set.
func (w *Workflow) CompleteCart(ctx context.Context, cartID uuid.UUID) (*models.OrderSet, error) {
	if w.logg != nil {
		ctx = w.logg.WithCartID(ctx, cartID.String())
	}

	if w.lock != nil {
		release, err := w.lock.Acquire(ctx, cartID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	existing, err := w.orderRepo.FindOrderSetByCartID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if w.logg != nil {
			w.logg.Info(ctx, "cart already completed, returning existing order set")
		}
		return w.orderRepo.FindOrderSetByID(ctx, existing.ID)
	}

	start := time.Now()
	set, err := w.run(ctx, cartID)
	w.metrics.ObserveDuration(workflowName, time.Since(start))
	if err != nil {
		w.metrics.IncFailure(workflowName)
		if isStepFailure(err) {
			w.metrics.IncCompensation(workflowName)
		}
		return nil, err
	}
	w.metrics.IncSuccess(workflowName)
	return set, nil
}

func (w *Workflow) run(ctx context.Context, cartID uuid.UUID) (*models.OrderSet, error) {
	record, err := w.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if record.Status != enums.CartStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotAllowed, "cart is not active")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no items")
	}

	productIDs := make([]uuid.UUID, 0, len(record.Items))
	for _, item := range record.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	optionIDs := make([]uuid.UUID, 0, len(record.ShippingMethods))
	for _, method := range record.ShippingMethods {
		optionIDs = append(optionIDs, method.ShippingOptionID)
	}

	productSellers, err := w.sellerRepo.ProductSellerMap(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	shippingOptionSellers, err := w.sellerRepo.ShippingOptionSellerMap(ctx, optionIDs)
	if err != nil {
		return nil, err
	}

	if err := ValidateCartSellers(record, productSellers); err != nil {
		return nil, err
	}
	if err := ValidateCartShippingOptions(record, productSellers, shippingOptionSellers); err != nil {
		return nil, err
	}

	if err := w.payments.AuthorizeCartPayment(ctx, record); err != nil {
		return nil, err
	}

	split := SplitCartBySeller(record, productSellers, shippingOptionSellers)

	usages := promotions.ComputeUsage(record)
	usageIDs := make([]uuid.UUID, len(usages))
	for i := range usages {
		usages[i].ID = uuid.New()
		usageIDs[i] = usages[i].ID
	}

	set := &models.OrderSet{
		ID:                  uuid.New(),
		CartID:              record.ID,
		CustomerID:          record.CustomerID,
		SalesChannelID:      record.SalesChannelID,
		PaymentCollectionID: record.PaymentCollectionID,
	}
	orderIDs := make([]uuid.UUID, len(split.Orders))
	for i := range split.Orders {
		split.Orders[i].OrderSetID = set.ID
		orderIDs[i] = split.Orders[i].ID
	}
	splitPayments := payments.BuildSplitPayments(split.Orders, record.PaymentCollectionID)
	lineItemIDs := make([]uuid.UUID, 0, len(split.Reservations))
	for _, res := range split.Reservations {
		lineItemIDs = append(lineItemIDs, res.LineItemID)
	}

	var raced *models.OrderSet

	steps := []saga.Step{
		{
			Name: "register-promotion-usage",
			Execute: func(ctx context.Context) error {
				return w.tx.WithTx(ctx, func(tx *gorm.DB) error {
					return w.promoRepo.WithTx(tx).RegisterUsage(ctx, usages)
				})
			},
			Compensate: func(ctx context.Context) error {
				return w.promoRepo.DeleteByIDs(ctx, usageIDs)
			},
		},
		{
			Name: "create-order-set",
			Execute: func(ctx context.Context) error {
				err := w.tx.WithTx(ctx, func(tx *gorm.DB) error {
					return w.orderRepo.WithTx(tx).CreateOrderSet(ctx, set)
				})
				if err != nil && db.IsUniqueViolation(err, "") {
					raced, _ = w.orderRepo.FindOrderSetByCartID(ctx, cartID)
					return errCartAlreadySplit
				}
				return err
			},
			Compensate: func(ctx context.Context) error {
				return w.orderRepo.DeleteOrderSet(ctx, set.ID)
			},
		},
		{
			Name: "create-seller-orders",
			Execute: func(ctx context.Context) error {
				return w.tx.WithTx(ctx, func(tx *gorm.DB) error {
					return w.orderRepo.WithTx(tx).CreateSellerOrders(ctx, split.Orders)
				})
			},
			Compensate: func(ctx context.Context) error {
				return w.orderRepo.DeleteOrdersByOrderSet(ctx, set.ID)
			},
		},
		saga.Parallel("finalize",
			saga.Step{
				Name: "create-split-payments",
				Execute: func(ctx context.Context) error {
					return w.tx.WithTx(ctx, func(tx *gorm.DB) error {
						return w.orderRepo.WithTx(tx).CreateSplitPayments(ctx, splitPayments)
					})
				},
				Compensate: func(ctx context.Context) error {
					return w.orderRepo.DeleteSplitPaymentsByOrders(ctx, orderIDs)
				},
			},
			saga.Step{
				Name: "reserve-inventory",
				Execute: func(ctx context.Context) error {
					return w.inventory.Reserve(ctx, split.Reservations)
				},
				Compensate: func(ctx context.Context) error {
					return w.inventory.Release(ctx, lineItemIDs)
				},
			},
			saga.Step{
				Name: "complete-cart",
				Execute: func(ctx context.Context) error {
					return w.carts.MarkCompleted(ctx, cartID)
				},
				Compensate: func(ctx context.Context) error {
					return w.carts.Reopen(ctx, cartID)
				},
			},
			saga.Step{
				Name: "emit-events",
				Execute: func(ctx context.Context) error {
					return w.tx.WithTx(ctx, func(tx *gorm.DB) error {
						return w.emitEvents(ctx, tx, set, split.Orders)
					})
				},
				Compensate: func(ctx context.Context) error {
					return w.tx.WithTx(ctx, func(tx *gorm.DB) error {
						if err := w.events.DeleteByAggregate(tx, string(enums.AggregateOrderSet), set.ID); err != nil {
							return err
						}
						for _, orderID := range orderIDs {
							if err := w.events.DeleteByAggregate(tx, string(enums.AggregateSellerOrder), orderID); err != nil {
								return err
							}
						}
						return nil
					})
				},
			},
		),
	}

	if err := w.runner.Run(ctx, workflowName, steps); err != nil {
		if errors.Is(err, errCartAlreadySplit) && raced != nil {
			if w.logg != nil {
				w.logg.Info(ctx, "lost cart split race, returning existing order set")
			}
			return w.orderRepo.FindOrderSetByID(ctx, raced.ID)
		}
		return nil, err
	}

	if w.logg != nil {
		logCtx := w.logg.WithOrderSetID(ctx, set.ID.String())
		w.logg.Info(w.logg.WithField(logCtx, "orders", len(split.Orders)), "cart split into seller orders")
	}
	return w.orderRepo.FindOrderSetByID(ctx, set.ID)
}

func (w *Workflow) emitEvents(ctx context.Context, tx *gorm.DB, set *models.OrderSet, created []models.SellerOrder) error {
	orderIDs := make([]uuid.UUID, 0, len(created))
	for _, order := range created {
		orderIDs = append(orderIDs, order.ID)
		event := outbox.DomainEvent{
			EventType:     enums.EventOrderPlaced,
			AggregateType: enums.AggregateSellerOrder,
			AggregateID:   order.ID,
			Data: payloads.OrderPlacedEvent{
				OrderID:    order.ID,
				OrderSetID: set.ID,
				SellerID:   order.SellerID,
			},
			Version: 1,
		}
		if err := w.events.Emit(ctx, tx, event); err != nil {
			return err
		}
	}
	return w.events.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderSetPlaced,
		AggregateType: enums.AggregateOrderSet,
		AggregateID:   set.ID,
		Data: payloads.OrderSetPlacedEvent{
			OrderSetID: set.ID,
			CartID:     set.CartID,
			OrderIDs:   orderIDs,
		},
		Version: 1,
	})
}

func isStepFailure(err error) bool {
	var stepErr *saga.ErrStepFailed
	return errors.As(err, &stepErr)
}
