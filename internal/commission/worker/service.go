package worker

import (
	"context"
	"encoding/json"
	"errors"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/dmarquina/sellerhub-backend/pkg/db/models"
	"github.com/dmarquina/sellerhub-backend/pkg/enums"
	pkgerrors "github.com/dmarquina/sellerhub-backend/pkg/errors"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox/payloads"
)

type lineMaterializer interface {
	CalculateCommissionForOrder(ctx context.Context, orderID, sellerID uuid.UUID) ([]models.CommissionLine, error)
	CommissionLinesForOrder(ctx context.Context, orderID uuid.UUID) ([]models.CommissionLine, error)
}

type subscriber interface {
	Receive(ctx context.Context, fn func(context.Context, *gcppubsub.Message)) error
}

// Service materializes commission lines for each placed seller order. Delivery
// is at least once; existing lines for an order make a redelivery a no-op.
type Service struct {
	subscription subscriber
	commissions  lineMaterializer
	logg         *logger.Logger
}

func NewService(subscription subscriber, commissions lineMaterializer, logg *logger.Logger) (*Service, error) {
	if subscription == nil {
		return nil, errors.New("commission worker: subscription is required")
	}
	if commissions == nil {
		return nil, errors.New("commission worker: commission service is required")
	}
	if logg == nil {
		return nil, errors.New("commission worker: logger is required")
	}
	return &Service{subscription: subscription, commissions: commissions, logg: logg}, nil
}

type processResult struct {
	nack bool
}

// Run consumes domain events until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	return s.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if s.process(innerCtx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (s *Service) process(ctx context.Context, msg *gcppubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	if eventType != string(enums.EventOrderPlaced) {
		return processResult{}
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"event_type":   eventType,
		"aggregate_id": msg.Attributes["aggregate_id"],
	})

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		s.logg.Warn(logCtx, "invalid event envelope")
		return processResult{}
	}

	var event payloads.OrderPlacedEvent
	if err := json.Unmarshal(envelope.Data, &event); err != nil {
		s.logg.Warn(logCtx, "invalid order placed payload")
		return processResult{}
	}
	if event.OrderID == uuid.Nil || event.SellerID == uuid.Nil {
		s.logg.Warn(logCtx, "order placed payload missing ids")
		return processResult{}
	}

	logCtx = s.logg.WithFields(logCtx, map[string]any{
		"event_id":  envelope.EventID,
		"order_id":  event.OrderID.String(),
		"seller_id": event.SellerID.String(),
	})

	existing, err := s.commissions.CommissionLinesForOrder(logCtx, event.OrderID)
	if err != nil {
		s.logg.Error(logCtx, "commission line lookup failed", err)
		return processResult{nack: true}
	}
	if len(existing) > 0 {
		s.logg.Info(logCtx, "commission lines already materialized")
		return processResult{}
	}

	lines, err := s.commissions.CalculateCommissionForOrder(logCtx, event.OrderID, event.SellerID)
	if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		// The order was rolled back after its event was published. Redelivery
		// can never succeed, so drop the message instead of poisoning the
		// subscription.
		s.logg.Warn(logCtx, "order no longer exists, skipping")
		return processResult{}
	}
	if err != nil {
		s.logg.Error(logCtx, "commission calculation failed", err)
		return processResult{nack: true}
	}

	logCtx = s.logg.WithField(logCtx, "line_count", len(lines))
	s.logg.Info(logCtx, "commission lines materialized")
	return processResult{}
}
