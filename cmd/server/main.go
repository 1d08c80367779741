package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/medassist/internal/config"
	"github.com/Skufu/medassist/internal/db"
	"github.com/Skufu/medassist/internal/logging"
	"github.com/Skufu/medassist/internal/server"
)

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(os.Getenv("APP_ENV"))
		bootLogger.Fatal().Err(err).Msg("config error")
	}
	logger := logging.New(cfg.AppEnv)

	ctx := context.Background()
	var health server.HealthChecker
	if cfg.EnableDB {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()
		health = pool
	}

	app := server.New(cfg, health, logger)
	defer app.Close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go app.RunSessionSweeper(sweepCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	logger.Info().Str("port", cfg.Port).Bool("db", cfg.EnableDB).Str("pdf_service", cfg.PDFServiceURL).Msg("server listening")
	waitForShutdown(srv, logger)
}

func waitForShutdown(srv *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
