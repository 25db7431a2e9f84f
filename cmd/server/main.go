package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/config"
	"github.com/wcarvalho/sms-expense-tracker/internal/database"
	"github.com/wcarvalho/sms-expense-tracker/internal/handlers"
	appmiddleware "github.com/wcarvalho/sms-expense-tracker/internal/middleware"
	"github.com/wcarvalho/sms-expense-tracker/internal/repositories"
	"github.com/wcarvalho/sms-expense-tracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	allowanceRepo := repositories.NewAllowanceRepository(db.DB)

	metrics := services.NewPrometheusMetrics()
	parser := services.NewNotificationParser()
	ingestionService := services.NewIngestionService(parser, transactionRepo, allowanceRepo, metrics)
	ledgerService := services.NewLedgerService(transactionRepo, allowanceRepo, metrics)

	webhookHandler := handlers.NewWebhookHandler(ingestionService, cfg.Ingestion.EmailBoundary)
	dashboardHandler := handlers.NewDashboardHandler(ledgerService, ingestionService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.PanicRecovery())
	e.Use(appmiddleware.SecurityHeaders())
	e.Use(appmiddleware.RateLimiterWithConfig(
		cfg.Security.RateLimitPerSecond,
		cfg.Security.RateLimitBurst,
	))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	// Notification webhooks
	e.POST("/webhooks/sms", webhookHandler.HandleSMS)
	e.POST("/webhooks/email", webhookHandler.HandleEmail)

	// Dashboard API
	api := e.Group("/api")
	api.GET("/transactions", dashboardHandler.List)
	api.POST("/transactions/:id/category", dashboardHandler.CycleCategory)
	api.PATCH("/transactions/:id", dashboardHandler.Update)
	api.DELETE("/transactions/:id", dashboardHandler.Delete)
	api.POST("/allowance", dashboardHandler.AddAllowance)
	api.GET("/charts/weekly", dashboardHandler.WeeklyChart)

	// Operational endpoints
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	address := cfg.Server.Host + ":" + cfg.Server.Port
	slog.Info("Starting expense tracker server",
		"address", address,
		"driver", cfg.Database.Driver,
		"environment", cfg.Server.Environment,
	)
	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}
