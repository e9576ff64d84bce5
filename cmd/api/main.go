package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/ai"
	httptransport "github.com/sea-catering/storefront/internal/api/http"
	"github.com/sea-catering/storefront/internal/api/http/handlers"
	"github.com/sea-catering/storefront/internal/auth"
	"github.com/sea-catering/storefront/internal/config"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/gateway"
	"github.com/sea-catering/storefront/internal/mailer"
	"github.com/sea-catering/storefront/internal/observability"
	"github.com/sea-catering/storefront/internal/persistence"
	"github.com/sea-catering/storefront/internal/repository"
	"github.com/sea-catering/storefront/internal/service"
	"github.com/sea-catering/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	if cfg.Payment.ServerKey == "" {
		logger.Warn("MIDTRANS_SERVER_KEY not provided; payments will fail")
	}
	snap := gateway.NewSnap(cfg.Payment.ServerKey, cfg.Payment.Production)

	recommender, err := ai.NewRecommender(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if err != nil {
		logger.Fatal("failed to init gemini", zap.Error(err))
	}
	defer recommender.Close() //nolint:errcheck

	mail, err := mailer.New(ctx, cfg.Notification.AWSRegion, cfg.Notification.EmailFrom, logger)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	testimonialRepo := repository.NewTestimonialRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, dispatcher, logger)
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		SubscriptionRepo: subscriptionRepo,
		PaymentRepo:      paymentRepo,
		Gateway:          snap,
		Locker:           redis,
		LockTTL:          cfg.Redis.PaymentLockTTL(),
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	recommendationService := service.NewRecommendationService(subscriptionService, recommender, logger)
	testimonialService := service.NewTestimonialService(testimonialRepo, redis, cfg.Redis.TestimonialCacheTTL(), dispatcher, logger)
	adminService := service.NewAdminService(subscriptionRepo)
	notificationService := service.NewNotificationService(dispatcher, mail, userRepo, subscriptionRepo, logger)
	worker.StartNotificationWorker(notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.AllowedOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Subscriptions:  handlers.NewSubscriptionsHandler(subscriptionService, paymentService, recommendationService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Testimonials:   handlers.NewTestimonialsHandler(testimonialService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
