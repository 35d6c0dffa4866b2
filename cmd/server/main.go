package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/softball-lineup/internal/api"
	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/metrics"
	"github.com/dom/softball-lineup/internal/repository/postgres"
	"github.com/dom/softball-lineup/internal/service"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbLogLevel := logger.Warn
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
		dbLogLevel = logger.Info
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, dbLogLevel)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	recorder := metrics.NewRecorder()

	// Initialize services
	services := service.NewServices(repos, cfg, recorder, log)
	defer services.Lineup.Close()

	// Initialize router
	router := api.NewRouter(services, recorder)

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
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"innings": cfg.Lineup.Options.Innings,
			"planTTL": cfg.PlanTTL,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}
