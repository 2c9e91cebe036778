// Package api exposes the risk assessment pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/cache"
	"github.com/health-assistant-server/internal/domain"
	"github.com/health-assistant-server/internal/feedback"
	"github.com/health-assistant-server/internal/middleware"
	"github.com/health-assistant-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	config   *domain.Config
	log      *logrus.Logger
	router   *gin.Engine
	server   *http.Server
	engine   *service.RiskEngine
	insights *service.InsightEngine
	reports  *service.ReportBuilder
	history  domain.HistoryStore
	feedback feedback.Store
	cache    *cache.AssessmentCache
}

// Deps bundles the collaborators the server routes dispatch to. Cache may
// be nil to disable assessment caching.
type Deps struct {
	Engine   *service.RiskEngine
	Insights *service.InsightEngine
	Reports  *service.ReportBuilder
	History  domain.HistoryStore
	Feedback feedback.Store
	Cache    *cache.AssessmentCache
}

// NewServer creates a new HTTP server instance
func NewServer(config *domain.Config, logger *logrus.Logger, deps Deps) *Server {
	if config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimit(config.Server.RateLimit, config.Server.RateBurst))

	server := &Server{
		config:   config,
		log:      logger,
		router:   router,
		engine:   deps.Engine,
		insights: deps.Insights,
		reports:  deps.Reports,
		history:  deps.History,
		feedback: deps.Feedback,
		cache:    deps.Cache,
	}

	server.setupRoutes()
	return server
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the gin engine, used by tests to drive requests without a
// listener.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/predict/:disease", s.handlePredict)
		v1.POST("/report/:disease", s.handleReport)
		v1.POST("/bmi", s.handleBMI)
		v1.GET("/history", s.handleHistoryList)
		v1.GET("/history/:id", s.handleHistoryGet)
		v1.POST("/feedback", s.handleFeedbackSubmit)
		v1.GET("/feedback", s.handleFeedbackList)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"diseases":  domain.AllDiseases(),
	}
	if s.cache != nil {
		response["cache"] = s.cache.Stats()
	}
	c.JSON(http.StatusOK, response)
}
