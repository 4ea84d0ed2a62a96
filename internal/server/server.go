package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nao1215/brokerseo/internal/compare"
	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/filter"
	"github.com/nao1215/brokerseo/internal/model"
)

// Timeouts for the HTTP server.
const (
	requestTimeout    = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
	retireDelay       = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	snap    atomic.Pointer[Snapshot]
	store   *compare.Store
	logger  *slog.Logger
	version string

	baseURL         string
	defaultSort     model.SortSpec
	unknownLeverage filter.Policy
	corsOrigins     []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /healthz and page documents.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithBaseURL sets the site origin used for canonical URLs.
func WithBaseURL(u string) Option {
	return func(s *Server) {
		s.baseURL = u
	}
}

// WithDefaultSort sets the ranking used when a request has no sort params.
func WithDefaultSort(spec model.SortSpec) Option {
	return func(s *Server) {
		s.defaultSort = spec
	}
}

// WithUnknownLeverage sets the filter policy for unparseable leverage.
func WithUnknownLeverage(p filter.Policy) Option {
	return func(s *Server) {
		s.unknownLeverage = p
	}
}

// WithCORSOrigins sets the allowed CORS origins. The default allows any.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// New creates a server over snap and store.
func New(snap *Snapshot, store *compare.Store, opts ...Option) *Server {
	s := &Server{
		store:       store,
		logger:      slog.Default(),
		version:     "dev",
		baseURL:     content.DefaultBaseURL,
		defaultSort: model.DefaultSortSpec(),
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap.Store(snap)
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Snapshot returns the data set currently served.
func (s *Server) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Swap atomically replaces the served snapshot. The previous snapshot's
// search index is closed after in-flight requests have had time to finish.
func (s *Server) Swap(next *Snapshot) {
	prev := s.snap.Swap(next)
	s.logger.Info("snapshot swapped",
		"brokers", next.Catalog.Len(),
		"pages", next.Registry.Len(),
	)
	if prev != nil && prev != next {
		time.AfterFunc(retireDelay, func() {
			if err := prev.Close(); err != nil {
				s.logger.Warn("failed to close retired snapshot", "error", err)
			}
		})
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/pages", s.handleListPages)
		r.Get("/pages/{slug}", s.handleRenderPage)

		r.Get("/brokers", s.handleListBrokers)
		r.Get("/brokers/{id}", s.handleGetBroker)

		r.Get("/search", s.handleSearch)

		r.Get("/compare", s.handleGetComparison)
		r.Delete("/compare", s.handleClearComparison)
		r.Post("/compare/{id}", s.handleAddComparison)
		r.Delete("/compare/{id}", s.handleRemoveComparison)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
