package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/crowd-translate/internal/api"
	"github.com/dom/crowd-translate/internal/config"
	"github.com/dom/crowd-translate/internal/logging"
	"github.com/dom/crowd-translate/internal/repository/postgres"
	"github.com/dom/crowd-translate/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	sqlLogLevel := logger.Info
	if cfg.IsProduction() {
		sqlLogLevel = logger.Warn
	}
	db, err := postgres.NewConnection(cfg.DatabaseURL, sqlLogLevel)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Google integrations
	if cfg.GoogleClientID == "" {
		zlog.Warn("GOOGLE_CLIENT_ID not set; sign-in endpoints will fail")
	}
	if cfg.GoogleCloudProjectID == "" {
		zlog.Warn("GOOGLE_CLOUD_PROJECT_ID not set; /translate will fail")
	}
	verifier := service.NewGoogleVerifier(cfg.GoogleClientID)
	translator := service.NewGoogleTranslator(cfg.GoogleCloudProjectID, cfg.TranslateLocation)

	// Initialize services
	services := service.NewServices(repos, cfg, verifier, translator)

	// Initialize router
	router := api.NewRouter(services, cfg, zlog)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}
