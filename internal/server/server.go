package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripcraft/internal/config"
	"tripcraft/internal/extract"
	"tripcraft/internal/logging"
	"tripcraft/internal/plan"
)

// Server exposes the extraction and planning pipeline over HTTP.
type Server struct {
	extraction *extract.Service
	generator  *plan.Generator
	booking    *plan.BookingService

	engine     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
	startTime  time.Time
}

// NewServer wires the HTTP surface. All dependencies are injected; the server
// owns no pipeline state of its own.
func NewServer(cfg config.ServerConfig, extraction *extract.Service, generator *plan.Generator, booking *plan.BookingService) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		if len(cfg.Origins) > 0 {
			corsConfig.AllowOrigins = cfg.Origins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		engine.Use(cors.New(corsConfig))
	}

	s := &Server{
		extraction: extraction,
		generator:  generator,
		booking:    booking,
		engine:     engine,
		logger:     logging.NewComponentLogger("server"),
		startTime:  time.Now(),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // plan generation waits on the LLM
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.POST("/plans", s.handleGeneratePlan)
		api.POST("/plans/adjust", s.handleAdjustPlan)
		api.POST("/extract", s.handleExtract)
		api.GET("/platforms", s.handlePlatforms)
		api.GET("/platforms/status", s.handlePlatformStatus)
		api.GET("/flights/search", s.handleFlightSearch)
		api.GET("/hotels/search", s.handleHotelSearch)
	}
}

// Handler exposes the gin engine for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}
