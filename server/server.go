// Package server is the HTTP drawing service.
//
// Routes:
//
//	POST /v1/drawings/:backend   document in, serialized drawing out
//	GET  /v1/backends            registered output formats
//	GET  /v1/shapes              supported shape kinds and titles
//	GET  /healthz                liveness
//	GET  /metrics                Prometheus metrics
//
// Every response carries an X-Request-ID header. A request id sent by the
// client is kept; otherwise a random one is assigned.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"

	// Backends served under /v1/drawings.
	_ "github.com/gogpu/draft/recording/backends/lisp"
	_ "github.com/gogpu/draft/recording/backends/raster"
	_ "github.com/gogpu/draft/recording/backends/svg"
)

// RequestIDHeader carries the request id.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// Option configures New.
type Option func(*options)

type options struct {
	metrics *Metrics
}

// WithMetrics makes the server record into m instead of a fresh registry.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New returns the gin engine of the service.
func New(settings config.Settings, opts ...Option) *gin.Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	switch settings.Server.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
		gin.SetMode(settings.Server.Mode)
	}

	h := &handler{settings: settings, metrics: o.metrics}

	r := gin.New()
	r.Use(requestID(), accessLog(), gin.Recovery())

	v1 := r.Group("/v1")
	{
		v1.POST("/drawings/:backend", h.draw)
		v1.GET("/backends", h.backends)
		v1.GET("/shapes", h.shapes)
	}
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.metrics.Registry, promhttp.HandlerOpts{})))
	return r
}

// ListenAndServe serves New(settings) on settings.Server.Addr until ctx is
// done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, settings config.Settings, opts ...Option) error {
	srv := &http.Server{
		Addr:              settings.Server.Addr,
		Handler:           New(settings, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log := draft.ComponentLogger("server")

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", settings.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		draft.ComponentLogger("server").Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
