// Package server exposes the ops HTTP surface: a component health check
// and the Prometheus metrics endpoint. It carries no annotation API;
// batch runs go through the CLI.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/gazetteer"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/semantic"
	"github.com/janscope/annotator/internal/telemetry"
)

// Default timeout values.
const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	healthCheckTimeout = 2 * time.Second
)

// Components are the pipeline pieces the health endpoint reports on.
// Searcher may be nil when the semantic tier is disabled.
type Components struct {
	Gazetteer  *gazetteer.Index
	Categories int
	Tiers      int
	Searcher   semantic.Searcher
}

// Server is the ops HTTP server.
type Server struct {
	http       *http.Server
	components Components
	telemetry  *telemetry.Provider
	log        logger.Logger
	started    time.Time
}

// New builds the ops server with its routes registered.
func New(cfg config.ServerConfig, components Components, tel *telemetry.Provider, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = defaultReadTimeout
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = defaultWriteTimeout
	}
	idleTimeout := cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = defaultIdleTimeout
	}

	s := &Server{
		components: components,
		telemetry:  tel,
		log:        log,
		started:    time.Now(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", s.health)
	if tel != nil {
		router.GET("/metrics", gin.WrapH(tel.Handler()))
	}

	s.http = &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Start serves until Shutdown is called. It returns nil on a clean
// shutdown.
func (s *Server) Start() error {
	s.log.Info("ops server listening", logger.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ops server: %w", err)
	}
	return nil
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("ops server shutting down")
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if s.components.Gazetteer != nil && !s.components.Gazetteer.Empty() {
		stats := s.components.Gazetteer.Stats()
		checks["gazetteer"] = gin.H{
			"status":       "ok",
			"villages":     stats.Villages,
			"urban_bodies": stats.UrbanBodies,
			"districts":    stats.Districts,
		}
	} else {
		healthy = false
		checks["gazetteer"] = gin.H{"status": "empty"}
	}

	if s.components.Categories > 0 {
		checks["taxonomy"] = gin.H{
			"status":       "ok",
			"categories":   s.components.Categories,
			"rescue_tiers": s.components.Tiers,
		}
	} else {
		healthy = false
		checks["taxonomy"] = gin.H{"status": "not loaded"}
	}

	if s.components.Searcher != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.components.Searcher.Healthy(ctx); err != nil {
			// Degraded, not down: the resolver skips the tier.
			checks["semantic"] = gin.H{"status": "unreachable", "error": err.Error()}
		} else {
			checks["semantic"] = gin.H{"status": "ok"}
		}
	} else {
		checks["semantic"] = gin.H{"status": "disabled"}
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"service":        "annotator",
		"status":         state,
		"version":        domain.ModelVersion,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"checks":         checks,
	})
}
