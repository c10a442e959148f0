package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmarquina/sellerhub-backend/api/routes"
	"github.com/dmarquina/sellerhub-backend/internal/cart"
	"github.com/dmarquina/sellerhub-backend/internal/commission"
	"github.com/dmarquina/sellerhub-backend/internal/inventory"
	"github.com/dmarquina/sellerhub-backend/internal/orders"
	"github.com/dmarquina/sellerhub-backend/internal/ordersets"
	"github.com/dmarquina/sellerhub-backend/internal/payments"
	"github.com/dmarquina/sellerhub-backend/internal/pricing"
	"github.com/dmarquina/sellerhub-backend/internal/promotions"
	"github.com/dmarquina/sellerhub-backend/internal/sellers"
	"github.com/dmarquina/sellerhub-backend/pkg/config"
	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/metrics"
	"github.com/dmarquina/sellerhub-backend/pkg/migrate"
	"github.com/dmarquina/sellerhub-backend/pkg/outbox"
	"github.com/dmarquina/sellerhub-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)
	inventoryService, err := inventory.NewService(gormDB)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(gormDB)
	workflow, err := ordersets.NewWorkflow(ordersets.WorkflowParams{
		TxRunner:   dbClient,
		Carts:      cart.NewRepository(gormDB),
		Sellers:    sellers.NewRepository(gormDB),
		Orders:     ordersRepo,
		Promotions: promotions.NewRepository(gormDB),
		Inventory:  inventoryService,
		Events:     outboxService,
		Payments:   payments.NewCollectionAuthorizer(logg),
		Lock:       ordersets.NewCartLock(redisClient, cfg.Workflow.CartLockTTL),
		Metrics:    metrics.NewWorkflowMetrics(prometheus.DefaultRegisterer),
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart workflow", err)
		os.Exit(1)
	}

	ruleRepo := commission.NewRuleRepository(gormDB)
	commissionService, err := commission.NewService(commission.ServiceParams{
		Tx:         dbClient,
		Rules:      ruleRepo,
		Lines:      commission.NewLineRepository(gormDB),
		Resolver:   commission.NewResolver(ruleRepo),
		Calculator: commission.NewCalculator(pricing.NewRepository(gormDB)),
		Orders:     ordersRepo,
		Events:     outboxService,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, workflow, ordersRepo, commissionService),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
