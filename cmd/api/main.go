package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"expense-manager/internal/config"
	"expense-manager/internal/database"
	"expense-manager/internal/handlers"
	"expense-manager/internal/middleware"
	"expense-manager/internal/repositories"
	"expense-manager/internal/server"
	"expense-manager/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	incomeRepo := repositories.NewIncomeRepository(db.DB)

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	passwordService := services.NewPasswordService(cfg.Security)
	tokenService := services.NewTokenService(&cfg.JWT)

	authService := services.NewAuthService(userRepo, blacklistedTokenRepo, passwordService, tokenService, metrics, logger)
	userService := services.NewUserService(userRepo, passwordService)
	categoryService := services.NewCategoryService(categoryRepo, expenseRepo, incomeRepo)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, metrics)
	incomeService := services.NewIncomeService(incomeRepo, categoryRepo, metrics)
	reportService := services.NewReportService(expenseRepo, incomeRepo, categoryRepo, metrics, cfg.Report)
	tokenCleanupService := services.NewTokenCleanupService(blacklistedTokenRepo, metrics)

	e := server.New(ctx, cfg, server.Handlers{
		Health:   handlers.NewHealthCheckHandler(db),
		Auth:     handlers.NewAuthHandler(authService),
		User:     handlers.NewUserHandler(userService),
		Category: handlers.NewCategoryHandler(categoryService),
		Expense:  handlers.NewExpenseHandler(expenseService),
		Income:   handlers.NewIncomeHandler(incomeService),
		Report:   handlers.NewReportHandler(reportService),
	}, middleware.RequireAuth(tokenService, blacklistedTokenRepo), prometheus.DefaultGatherer)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.TokenCleanupSchedule, func() {
		_, _ = tokenCleanupService.PurgeExpired(ctx)
	}); err != nil {
		logger.Error("Invalid token cleanup schedule", "schedule", cfg.Jobs.TokenCleanupSchedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		<-scheduler.Stop().Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting expense manager API",
		"addr", srv.Addr,
		"environment", cfg.Server.Environment,
		"token_cleanup_schedule", cfg.Jobs.TokenCleanupSchedule)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
