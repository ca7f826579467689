package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meterline/storefront-backend/api/controllers"
	"github.com/meterline/storefront-backend/api/middleware"
	"github.com/meterline/storefront-backend/internal/catalog"
	contactsvc "github.com/meterline/storefront-backend/internal/contact"
	"github.com/meterline/storefront-backend/internal/discounts"
	ordersvc "github.com/meterline/storefront-backend/internal/orders"
	"github.com/meterline/storefront-backend/pkg/config"
	"github.com/meterline/storefront-backend/pkg/db"
	"github.com/meterline/storefront-backend/pkg/logger"
	"github.com/meterline/storefront-backend/pkg/metrics"
	"github.com/meterline/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	catalogService catalog.Service,
	discountService discounts.Service,
	orderService ordersvc.Service,
	contactService contactsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	// Without redis the storefront still serves traffic, just unthrottled.
	passthrough := func(next http.Handler) http.Handler { return next }
	orderLimiter := passthrough
	contactLimiter := passthrough
	if redisClient != nil {
		orderPolicy := middleware.NewSubmitRateLimitPolicy(
			"order",
			cfg.SubmitRateLimit.Window,
			cfg.SubmitRateLimit.OrderIPLimit,
		)
		contactPolicy := middleware.NewSubmitRateLimitPolicy(
			"contact",
			cfg.SubmitRateLimit.Window,
			cfg.SubmitRateLimit.ContactIPLimit,
		)
		orderLimiter = middleware.SubmitRateLimit(orderPolicy, redisClient, logg)
		contactLimiter = middleware.SubmitRateLimit(contactPolicy, redisClient, logg)
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, nil))
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(catalogService, logg))

		r.Get("/validate-discount", controllers.ValidateDiscount(discountService, logg))

		r.Get("/order-history", controllers.OrderHistory(orderService, logg))
		r.Get("/order-details/{orderNumber}", controllers.OrderDetails(orderService, logg))
		r.With(orderLimiter).Post("/orders", controllers.PlaceOrder(orderService, logg))

		r.With(contactLimiter).Post("/contact", controllers.SubmitContact(contactService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.Admin.APIKey, logg))
		r.Get("/products", controllers.AdminListProducts(catalogService, logg))
		r.Post("/products/import", controllers.AdminImportProducts(catalogService, logg))
	})

	return r
}
