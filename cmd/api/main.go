package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pekay23/raymond-gray-platform/internal/api/http"
	"github.com/pekay23/raymond-gray-platform/internal/api/http/handlers"
	"github.com/pekay23/raymond-gray-platform/internal/auth"
	"github.com/pekay23/raymond-gray-platform/internal/config"
	"github.com/pekay23/raymond-gray-platform/internal/events"
	"github.com/pekay23/raymond-gray-platform/internal/observability"
	"github.com/pekay23/raymond-gray-platform/internal/persistence"
	"github.com/pekay23/raymond-gray-platform/internal/ratelimit"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
	"github.com/pekay23/raymond-gray-platform/internal/service"
	"github.com/pekay23/raymond-gray-platform/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)
	arrivalRepo := repository.NewArrivalRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	inquiryService := service.NewInquiryService(service.InquiryDependencies{
		InquiryRepo: inquiryRepo,
		Dispatcher:  dispatcher,
	})
	dispatchService := service.NewDispatchService(service.DispatchDependencies{
		InquiryRepo: inquiryRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	jobService := service.NewJobService(service.JobDependencies{
		InquiryRepo: inquiryRepo,
		Dispatcher:  dispatcher,
	})
	arrivalService := service.NewArrivalService(arrivalRepo, dispatcher)
	reportService := service.NewReportService(reportRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	var signupLimiter ratelimit.Limiter
	if cfg.RateLimit.Backend == "redis" {
		signupLimiter = ratelimit.NewRedisLimiter(redis.Client, cfg.RateLimit.Max, cfg.RateLimit.Window())
	} else {
		signupLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window())
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Inquiries:      handlers.NewInquiriesHandler(inquiryService, dispatchService),
		Jobs:           handlers.NewJobsHandler(jobService, arrivalService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
		SignupLimiter:  signupLimiter,
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
