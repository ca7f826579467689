package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/meterline/storefront-backend/api/routes"
	"github.com/meterline/storefront-backend/internal/catalog"
	"github.com/meterline/storefront-backend/internal/contact"
	"github.com/meterline/storefront-backend/internal/discounts"
	"github.com/meterline/storefront-backend/internal/mailer"
	"github.com/meterline/storefront-backend/internal/orders"
	"github.com/meterline/storefront-backend/internal/pricing"
	"github.com/meterline/storefront-backend/pkg/config"
	"github.com/meterline/storefront-backend/pkg/db"
	"github.com/meterline/storefront-backend/pkg/logger"
	"github.com/meterline/storefront-backend/pkg/metrics"
	"github.com/meterline/storefront-backend/pkg/migrate"
	"github.com/meterline/storefront-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
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

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, submit rate limiting disabled")
	}

	mailClient, err := mailer.New(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mailer", err)
		os.Exit(1)
	}
	if mailClient == nil {
		logg.Warn(context.Background(), "smtp not configured, notifications disabled")
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	discountRepo := discounts.NewRepository(dbClient.DB())
	discountService, err := discounts.NewService(discountRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount service", err)
		os.Exit(1)
	}

	engine, err := pricing.NewEngine(catalogRepo, discountRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing engine", err)
		os.Exit(1)
	}

	var orderNotifier orders.Notifier
	var contactNotifier contact.Notifier
	if mailClient != nil {
		orderNotifier = mailClient
		contactNotifier = mailClient
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, engine, orderNotifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()), contactNotifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
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

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			catalogService,
			discountService,
			orderService,
			contactService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
