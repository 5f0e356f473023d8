package api

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/service"
)

// Defaults for Config.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPath     = "/metrics"

	// maxBodyBytes bounds request bodies; documents are small.
	maxBodyBytes = 8 << 20
)

// Config configures a Server.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Metrics, when set, is served at MetricsPath.
	Metrics     http.Handler
	MetricsPath string
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.MetricsPath == "" {
		c.MetricsPath = DefaultMetricsPath
	}
}

// Server is the HTTP front end of a service.Service.
type Server struct {
	svc    *service.Service
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a Server. A nil logger discards output.
func New(svc *service.Service, cfg Config, logger *log.Logger) *Server {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{svc: svc, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving API", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down API")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(observeRequests)

	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, s.cfg.MetricsPath, s.cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Get("/healthz", s.healthz)
		r.Get("/version", s.version)
		r.Post("/import", s.importDocument)

		for _, kind := range kinds {
			r.Route("/"+string(kind)+"s", s.documentRoutes(kind))
		}
		r.Route("/drafts", s.draftRoutes)
		r.Route("/style", func(r chi.Router) {
			r.Post("/combine", s.combine)
			r.Post("/resolve", s.resolve)
			r.Post("/propagate", s.propagate)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:    errors.ErrCodeInvalidInput,
			Message: "method " + r.Method + " not allowed",
		})
	})
	return r
}
