package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/corazor/contact-service/internal/api/http"
	"github.com/corazor/contact-service/internal/api/http/handlers"
	"github.com/corazor/contact-service/internal/auth"
	"github.com/corazor/contact-service/internal/config"
	"github.com/corazor/contact-service/internal/events"
	"github.com/corazor/contact-service/internal/notify"
	"github.com/corazor/contact-service/internal/observability"
	"github.com/corazor/contact-service/internal/persistence"
	"github.com/corazor/contact-service/internal/ratelimit"
	"github.com/corazor/contact-service/internal/repository"
	"github.com/corazor/contact-service/internal/service"
	"github.com/corazor/contact-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var submissions repository.ContactSubmissionRepository
	if pg.Enabled() {
		submissions = repository.NewContactSubmissionRepository(pg.PoolHandle())
	}

	var emailSender notify.EmailSender
	if cfg.Contact.EmailEnabled() {
		emailSender = notify.NewResendSender(cfg.Contact.EmailAPIKey, cfg.Contact.FromEmail)
	} else if cfg.Contact.EmailService != "" {
		logger.Warn("email notifications disabled", zap.String("service", cfg.Contact.EmailService))
	}
	var crm notify.WebhookSender
	if cfg.Contact.CRMWebhookURL != "" {
		crm = notify.NewCRMWebhook(cfg.Contact.CRMWebhookURL, cfg.Site.URL, 0)
	}
	notifications := service.NewNotificationService(dispatcher, emailSender, crm, logger, cfg.Contact)

	contactService := service.NewContactService(*cfg, service.ContactDependencies{
		Repo:       submissions,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	background := worker.Background{Notifications: notifications, Logger: logger}
	var contactLimiter fiber.Handler
	if cfg.RateLimit.Enabled {
		var store ratelimit.Store
		if cfg.RateLimit.Backend == "redis" {
			store = ratelimit.NewRedisStore(redis.Client)
		} else {
			memoryStore := ratelimit.NewMemoryStore()
			background.RateLimitStore = memoryStore
			background.PruneInterval = cfg.RateLimit.Window()
			store = memoryStore
		}
		limiter := ratelimit.NewLimiter(store, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
		contactLimiter = ratelimit.Middleware(limiter, ratelimit.KeyByIP("contact"), logger, metrics)
		logger.Info("contact rate limiting enabled",
			zap.String("backend", cfg.RateLimit.Backend),
			zap.Int("max_requests", cfg.RateLimit.MaxRequests),
			zap.Duration("window", cfg.RateLimit.Window()))
	}
	worker.Start(ctx, background)

	var adminHandler *handlers.AdminHandler
	var adminMiddleware *auth.AdminMiddleware
	if cfg.Auth.AdminEnabled() {
		if _, err := auth.HashCost(cfg.Auth.AdminPasswordHash); err != nil {
			logger.Warn("ADMIN_PASSWORD_HASH is not a bcrypt hash; admin login will fail", zap.Error(err))
		}
		adminService := service.NewAdminService(cfg.Auth, submissions)
		adminHandler = handlers.NewAdminHandler(adminService, metrics)
		adminMiddleware = auth.NewAdminMiddleware(adminService.TokenManager())
	} else {
		logger.Info("ADMIN_PASSWORD_HASH not provided; admin API disabled")
	}

	app := fiber.New(httptransport.NewServerConfig(cfg.App))
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigin:  cfg.Site.URL,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Env, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Contact:         handlers.NewContactHandler(contactService),
		Admin:           adminHandler,
		AdminMiddleware: adminMiddleware,
		ContactLimiter:  contactLimiter,
	})

	if cfg.Site.AnalyticsID != "" {
		logger.Info("analytics configured", zap.String("analytics_id", cfg.Site.AnalyticsID))
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
