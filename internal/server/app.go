package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/medassist/internal/chat"
	"github.com/Skufu/medassist/internal/config"
	"github.com/Skufu/medassist/internal/docconv"
	"github.com/Skufu/medassist/internal/extractclient"
	"github.com/Skufu/medassist/internal/interactions"
	"github.com/Skufu/medassist/internal/knowledge"
	"github.com/Skufu/medassist/internal/labs"
	"github.com/Skufu/medassist/internal/logging"
	"github.com/Skufu/medassist/internal/middleware"
	"github.com/Skufu/medassist/internal/pdfservice"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PDFExtractor is the remote extraction service; extractclient.Client
// implements it.
type PDFExtractor interface {
	ExtractPDF(ctx context.Context, name string, r io.Reader) (string, error)
}

type App struct {
	cfg    *config.Config
	db     HealthChecker
	logger zerolog.Logger

	kb        *knowledge.Base
	labs      *labs.Extractor
	checker   *interactions.Checker
	chat      *chat.Router
	sessions  *chat.Store
	pdf       *pdfservice.Handler
	remotePDF PDFExtractor
}

// New wires the engine. db may be nil when no database is configured.
func New(cfg *config.Config, db HealthChecker, logger zerolog.Logger) *App {
	kb := knowledge.Default()
	checker := interactions.NewChecker(kb)
	router := chat.NewRouter(kb, checker, chat.Options{
		EmergencyTriage: cfg.ChatEmergencyTriage,
		SymptomScope:    chat.SymptomScope(cfg.ChatSymptomScope),
	})

	app := &App{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		kb:       kb,
		labs:     labs.NewExtractor(kb),
		checker:  checker,
		chat:     router,
		sessions: chat.NewStore(router, cfg.ChatReplyDelay, logger).WithIdleTTL(cfg.ChatSessionTTL),
		pdf:      pdfservice.NewHandler(docconv.PDFText, logger),
	}
	if cfg.PDFServiceURL != "" {
		app.remotePDF = extractclient.New(cfg.PDFServiceURL, logger)
	}
	return app
}

// WithRemotePDF overrides the PDF extraction collaborator.
func (a *App) WithRemotePDF(p PDFExtractor) *App {
	a.remotePDF = p
	return a
}

func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(
		logging.Gin(a.logger),
		gin.Recovery(),
		middleware.LimitBodySize(a.cfg.MaxUploadBytes),
		middleware.CORS(a.cfg.CORSAllowOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", a.ready)

	a.pdf.Register(router)

	api := router.Group("/api")
	api.GET("/knowledge", a.knowledgeIndex)
	api.POST("/labs/extract", a.extractLabs)
	api.POST("/documents", a.uploadDocuments)
	api.POST("/risk", a.assessRisk)
	api.POST("/interactions", a.checkInteractions)
	api.POST("/chat/respond", a.respond)

	api.POST("/sessions", a.createSession)
	api.GET("/sessions/:id", a.getSession)
	api.DELETE("/sessions/:id", a.deleteSession)
	api.POST("/sessions/:id/symptoms", a.addSymptom)
	api.POST("/sessions/:id/conditions", a.addCondition)
	api.PUT("/sessions/:id/vitals", a.setVitals)
	api.POST("/sessions/:id/messages", a.postMessage)

	return router
}

// RunSessionSweeper evicts idle chat sessions until ctx is done. It returns
// immediately when no session TTL is configured.
func (a *App) RunSessionSweeper(ctx context.Context) {
	interval := a.cfg.ChatSessionTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	a.sessions.RunSweeper(ctx, interval)
}

// Close drops pending chat replies.
func (a *App) Close() {
	a.sessions.Close()
}

func (a *App) ready(c *gin.Context) {
	if a.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}
