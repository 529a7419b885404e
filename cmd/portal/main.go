package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/app"
	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/config"
	"github.com/dreamedu/studio-portal/internal/controller"
	"github.com/dreamedu/studio-portal/internal/notify"
	"github.com/dreamedu/studio-portal/internal/repository"
	"github.com/dreamedu/studio-portal/internal/service"
	"github.com/dreamedu/studio-portal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting studio portal",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Хранилище снимков и репозитории; каждая коллекция грузится один раз
	snapshots := store.NewPgStore(pool, logger)

	teacherRepo := repository.NewTeacherRepository(snapshots, logger)
	bookingRepo := repository.NewBookingRepository(snapshots, logger)
	packageRepo := repository.NewPackageRepository(snapshots, logger)
	txRepo := repository.NewTransactionRepository(snapshots, logger)
	cmsRepo := repository.NewCMSRepository(snapshots, logger)

	defaulted, err := teacherRepo.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load teachers", zap.Error(err))
	}
	if defaulted {
		if err := teacherRepo.Save(ctx); err != nil {
			logger.Error("Failed to persist seeded teachers", zap.Error(err))
		}
	}
	bookingRepo.Load(ctx)
	if packageRepo.Load(ctx) {
		if err := packageRepo.Save(ctx); err != nil {
			logger.Error("Failed to persist seeded packages", zap.Error(err))
		}
	}
	txRepo.Load(ctx)
	cmsRepo.Load(ctx)
	logger.Info("✅ Snapshot buckets loaded")

	gate := auth.NewGate(snapshots, logger)
	if sess := gate.Restore(ctx); sess != nil {
		logger.Info("Durable session found", zap.String("role", string(sess.Role)))
	}

	notifier, err := notify.New(cfg.TelegramToken, cfg.AdminChatID, logger)
	if err != nil {
		logger.Fatal("Failed to create notifier", zap.Error(err))
	}

	teacherService := service.NewTeacherService(teacherRepo, logger)
	bookingService := service.NewBookingService(teacherRepo, bookingRepo, cmsRepo, notifier, logger)
	paymentService := service.NewPaymentService(teacherRepo, packageRepo, txRepo, logger)
	catalogService := service.NewCatalogService(packageRepo, logger)
	cmsService := service.NewCMSService(cmsRepo, logger)
	authService := service.NewAuthService(teacherRepo, cmsRepo, gate, cfg.AdminEmail, cfg.AdminPassword, logger)

	digest := app.NewDigest(bookingService, notifier, logger)
	digest.Start(ctx)
	defer digest.Stop()

	tokens := auth.NewTokens(cfg.JWTSecret)
	server := controller.NewServer(
		authService,
		teacherService,
		bookingService,
		paymentService,
		catalogService,
		cmsService,
		tokens,
		time.Duration(cfg.SessionTTLHrs)*time.Hour,
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		logger.Info("🚀 HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("✅ Portal stopped")
}
