package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/civicgrid/complaint-service/internal/api/http"
	"github.com/civicgrid/complaint-service/internal/api/http/handlers"
	"github.com/civicgrid/complaint-service/internal/auth"
	"github.com/civicgrid/complaint-service/internal/config"
	"github.com/civicgrid/complaint-service/internal/events"
	"github.com/civicgrid/complaint-service/internal/observability"
	"github.com/civicgrid/complaint-service/internal/persistence"
	"github.com/civicgrid/complaint-service/internal/repository"
	"github.com/civicgrid/complaint-service/internal/service"
	"github.com/civicgrid/complaint-service/internal/storage"
	"github.com/civicgrid/complaint-service/internal/worker"
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

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	objectStore, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn("object storage bucket check failed", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ministryRepo := repository.NewMinistryRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)
	updateRepo := repository.NewComplaintUpdateRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  complaintRepo,
		UpdateRepo:     updateRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
		MinistryRepo:   ministryRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
	})
	ministryService := service.NewMinistryService(ministryRepo)
	userService := service.NewUserService(userRepo)
	attachmentService := service.NewAttachmentService(cfg.Storage, complaintRepo, attachmentRepo, objectStore)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxUploadBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.RateLimitMiddleware(rdb.Client, cfg.RateLimit, logger))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(pg, rdb),
		Auth:            handlers.NewAuthHandler(authService),
		Complaints:      handlers.NewComplaintsHandler(complaintService, attachmentService),
		AdminComplaints: handlers.NewAdminComplaintsHandler(complaintService),
		Ministries:      handlers.NewMinistriesHandler(ministryService),
		Users:           handlers.NewUsersHandler(userService),
		AuthMiddleware:  authMiddleware,
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
