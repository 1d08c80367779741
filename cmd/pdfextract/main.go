// Command pdfextract runs the standalone PDF text extraction service.
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

	"github.com/Skufu/medassist/internal/config"
	"github.com/Skufu/medassist/internal/docconv"
	"github.com/Skufu/medassist/internal/logging"
	"github.com/Skufu/medassist/internal/middleware"
	"github.com/Skufu/medassist/internal/pdfservice"
)

func main() {
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(os.Getenv("APP_ENV"))
		bootLogger.Fatal().Err(err).Msg("config error")
	}
	logger := logging.New(cfg.AppEnv).With().Str("service", "pdfextract").Logger()

	router := gin.New()
	router.Use(
		logging.Gin(logger),
		gin.Recovery(),
		middleware.LimitBodySize(cfg.MaxUploadBytes),
		middleware.CORS(cfg.CORSAllowOrigins),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	pdfservice.NewHandler(docconv.PDFText, logger).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.PDFServicePort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("port", cfg.PDFServicePort).Msg("pdf service listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
