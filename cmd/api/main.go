package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/credsure/admin-api/internal/api/http"
	"github.com/credsure/admin-api/internal/api/http/handlers"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/config"
	"github.com/credsure/admin-api/internal/events"
	"github.com/credsure/admin-api/internal/notification"
	"github.com/credsure/admin-api/internal/observability"
	"github.com/credsure/admin-api/internal/persistence"
	"github.com/credsure/admin-api/internal/repository"
	"github.com/credsure/admin-api/internal/service"
	"github.com/credsure/admin-api/internal/storage"
	"github.com/credsure/admin-api/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	objectStore, err := storage.NewS3Store(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewAdminUserRepository(pool)
	carRepo := repository.NewCarRepository(pool)
	applicationRepo := repository.NewFinanceApplicationRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)
	financeConfigStore := repository.NewFinanceConfigStore(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	carService := service.NewCarService(carRepo, activityService, objectStore, logger)
	financeConfigService := service.NewFinanceConfigService(financeConfigStore, activityService)
	applicationService := service.NewFinanceApplicationService(applicationRepo, carRepo, dispatcher, activityService)

	mailer := notification.NewSMTPMailer(cfg.Mail)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, !cfg.IsProduction()),
		Cars:           handlers.NewCarsHandler(carService),
		AdminConfig:    handlers.NewAdminConfigHandler(financeConfigService),
		Applications:   handlers.NewFinanceApplicationsHandler(applicationService),
		Public:         handlers.NewPublicHandler(carService, financeConfigService, applicationService),
		Activity:       handlers.NewActivityHandler(activityService),
		Upload:         handlers.NewUploadHandler(objectStore),
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
