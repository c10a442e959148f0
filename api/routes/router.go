package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarquina/sellerhub-backend/api/controllers"
	"github.com/dmarquina/sellerhub-backend/api/middleware"
	"github.com/dmarquina/sellerhub-backend/internal/commission"
	"github.com/dmarquina/sellerhub-backend/internal/orders"
	"github.com/dmarquina/sellerhub-backend/internal/ordersets"
	"github.com/dmarquina/sellerhub-backend/pkg/config"
	"github.com/dmarquina/sellerhub-backend/pkg/db"
	"github.com/dmarquina/sellerhub-backend/pkg/logger"
	"github.com/dmarquina/sellerhub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	workflow *ordersets.Workflow,
	ordersRepo orders.Repository,
	commissionSvc *commission.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/carts/{cartID}/complete", controllers.CartComplete(workflow, logg))
		r.Get("/order-sets/{orderSetID}", controllers.OrderSetByID(ordersRepo, logg))

		r.Route("/commission/rules", func(r chi.Router) {
			r.Get("/", controllers.CommissionRuleList(commissionSvc, logg))
			r.Post("/", controllers.CommissionRuleCreate(commissionSvc, logg))
			r.Delete("/{ruleID}", controllers.CommissionRuleDelete(commissionSvc, logg))
			r.Post("/{ruleID}/restore", controllers.CommissionRuleRestore(commissionSvc, logg))
		})
	})

	return r
}
