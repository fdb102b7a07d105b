package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/apexitsupply/apex-backend/api"
	"github.com/apexitsupply/apex-backend/api/routes"
	admin "github.com/apexitsupply/apex-backend/internal/admins"
	"github.com/apexitsupply/apex-backend/internal/contact"
	"github.com/apexitsupply/apex-backend/internal/newsletter"
	"github.com/apexitsupply/apex-backend/internal/notify"
	product "github.com/apexitsupply/apex-backend/internal/products"
	quote "github.com/apexitsupply/apex-backend/internal/quotes"
	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/db"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/metrics"
	"github.com/apexitsupply/apex-backend/pkg/migrate"
	"github.com/apexitsupply/apex-backend/pkg/redis"
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

	var mailer *notify.Mailer
	if cfg.Sendgrid.APIKey != "" {
		mailer, err = notify.NewMailer(cfg.Sendgrid, cfg.Notify, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "sendgrid not configured, sales notifications disabled")
	}

	productService, err := product.NewService(product.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	var quoteNotifier quote.Notifier
	var contactNotifier contact.Notifier
	if mailer != nil {
		quoteNotifier = mailer
		contactNotifier = mailer
	}

	quoteService, err := quote.NewService(quote.NewRepository(dbClient.DB()), quoteNotifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()), contactNotifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.NewRepository(dbClient.DB()), cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(
		cfg,
		logg,
		routes.Deps{
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
		},
		productService,
		quoteService,
		contactService,
		newsletterService,
		adminService,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": ":" + cfg.App.Port,
	})
	logg.Info(logCtx, "starting api server")

	server := api.NewServer(cfg, handler, logg)
	if err := server.Run(ctx); err != nil {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(logCtx, "api server stopped")
}
