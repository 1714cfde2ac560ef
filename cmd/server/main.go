// @title           Zuna API
// @version         1.0.0
// @description     Server-side core for the Zuna kids drawing app: badges, activity tracking, drawing analyses, and parent content.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:9000
// @BasePath  /api/v1

// @securityDefinitions.apikey GatewayUserID
// @in header
// @name X-User-ID
// @description User identity injected by the authenticating gateway.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"zuna/internal/config"
	"zuna/internal/database"
	"zuna/internal/monitoring"
	"zuna/internal/response"
	"zuna/internal/router"
	"zuna/internal/services"
	"zuna/internal/utils/appinfo"
)

func main() {
	logger, err := initLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("Starting Zuna server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	dbManager, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbManager.Close()

	if err := dbManager.Migrate("migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbHealth := dbManager.Health(healthCtx)
	healthCancel()
	if !dbHealth.Healthy() {
		logger.Fatal("Database is not healthy",
			zap.String("status", dbHealth.Status),
			zap.String("error", dbHealth.Error),
		)
	}
	logger.Info("Database initialized successfully")

	serviceCollection, err := services.NewServiceCollection(dbManager, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = serviceCollection.Start(startCtx)
	startCancel()
	if err != nil {
		logger.Fatal("Failed to start services", zap.Error(err))
	}

	responseConfig := response.DefaultConfig()
	if cfg.IsDevelopment() {
		responseConfig = response.DevelopmentConfig()
	}
	responseBuilder := response.NewBuilder(responseConfig, logger)

	dashboard := monitoring.NewDashboard(
		dbManager,
		serviceCollection.EventBus,
		logger,
		appinfo.GetVersion(),
		cfg.Server.Environment,
	)

	handler := router.SetupRouter(serviceCollection, dashboard, responseBuilder, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", server.Addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Application started successfully",
		zap.String("url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port)),
		zap.String("health_check", "/health"),
		zap.String("swagger_ui", "/swagger/index.html"),
	)

	<-quit
	logger.Info("Shutting down application...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	} else {
		logger.Info("Server shutdown completed")
	}

	if err := serviceCollection.Shutdown(shutdownCtx); err != nil {
		logger.Error("Service shutdown reported errors", zap.Error(err))
	}

	logger.Info("Application shutdown completed")
}

// initLogger initializes the structured logger based on environment
func initLogger() (*zap.Logger, error) {
	env := appinfo.GetEnvironment()
	var config zap.Config

	switch env {
	case "production":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "staging":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
