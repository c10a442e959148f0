package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/dmarquina/sellerhub-backend/internal/commission"
	"github.com/dmarquina/sellerhub-backend/internal/commission/worker"
	"github.com/dmarquina/sellerhub-backend/internal/orders"
	"github.com/dmarquina/sellerhub-backend/internal/pricing"
	"github.com/dmarquina/sellerhub-backend/pkg/config"
	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox"
	"github.com/dmarquina/sellerhub-backend/pkg/pubsub"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "commission-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "commission-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "failed to close database client", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "failed to close pubsub client", err)
		}
	}()

	subscription := pubsubClient.DomainSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "domain subscription", errors.New("subscription not configured"))
	}

	calculator := commission.NewCalculator(pricing.NewRepository(dbClient.DB()))
	ruleRepo := commission.NewRuleRepository(dbClient.DB())
	commissionService, err := commission.NewService(commission.ServiceParams{
		Tx:         dbClient,
		Rules:      ruleRepo,
		Lines:      commission.NewLineRepository(dbClient.DB()),
		Resolver:   commission.NewResolver(ruleRepo),
		Calculator: calculator,
		Orders:     orders.NewRepository(dbClient.DB()),
		Events:     outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		Logger:     logg,
	})
	requireResource(ctx, logg, "commission service", err)

	service, err := worker.NewService(subscription, commissionService, logg)
	requireResource(ctx, logg, "commission worker service", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{"env": cfg.App.Env})
	logg.Info(runCtx, "commission worker ready")

	if err := service.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "commission worker failed", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
