// Package server exposes a loaded predictor over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idlab-discover/EconCluster-cli/internal/audit"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
)

const serviceName = "econcluster"

// Options configures a Server. Zero durations fall back to the defaults
// applied in New.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxBodyBytes caps request bodies. Zero means 1 MiB.
	MaxBodyBytes int64
	Audit        *audit.Logger
}

// Server serves one shared, read-only predictor.
type Server struct {
	p       *predictor.Predictor
	opts    Options
	engine  *gin.Engine
	started time.Time

	served atomic.Int64
	failed atomic.Int64
}

// route is one entry of the routing table.
type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// New builds a server around p with its routes registered.
func New(p *predictor.Predictor, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	s := &Server{p: p, opts: opts, started: time.Now()}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) routes() []route {
	return []route{
		{Method: http.MethodPost, Path: "/predict", Handler: s.PredictHandler},
		{Method: http.MethodGet, Path: "/model", Handler: s.ModelHandler},
		{Method: http.MethodGet, Path: "/healthz", Handler: s.HealthHandler},
	}
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), s.limitBody())
	for _, rt := range s.routes() {
		r.Handle(rt.Method, rt.Path, rt.Handler)
	}
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logf("", "listening on %s", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logf("", "stopped after %d prediction(s)", s.served.Load())
	return nil
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logf(c.GetString(requestIDKey), "%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes)
		c.Next()
	}
}
