// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes record normalization and the local index over
// HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/eds-records/internal/index"
	"github.com/pdiddy/eds-records/pkg/types"
)

const (
	defaultAddr         = ":8080"
	defaultMaxBodyBytes = 8 << 20

	requestIDHeader = "X-Request-Id"
)

// Server serves the HTTP API. The index is optional; without one the
// record and search routes answer 503.
type Server struct {
	cfg     types.ServerConfig
	norm    types.NormalizeConfig
	store   *index.Store
	version string
	log     logrus.FieldLogger
	router  *gin.Engine
}

// New builds a server and its routes.
func New(cfg types.ServerConfig, norm types.NormalizeConfig, store *index.Store, version string, log logrus.FieldLogger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		cfg:     cfg,
		norm:    norm,
		store:   store,
		version: version,
		log:     log.WithField("component", "server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.AllowOrigins
	}
	corsCfg.AddAllowHeaders("Authorization")
	corsCfg.AddExposeHeaders(requestIDHeader)
	router.Use(cors.New(corsCfg))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/favicon.ico", ignoreHandler)
	router.GET("/version", s.versionHandler)
	router.GET("/healthcheck", s.healthCheckHandler)

	if api := router.Group("/api"); api != nil {
		api.POST("/normalize", s.normalizeHandler)
		api.GET("/records/:id", s.recordHandler)
		api.GET("/search", s.searchHandler)
	}
	return router
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger tags each request with an ID and logs it on completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		entry := s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("request failed")
			return
		}
		entry.Info("request")
	}
}
