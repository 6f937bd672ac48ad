// Package api provides the HTTP server for the catalog: the HTML pages under
// /catalog, the read-only JSON API under /api/v1, and the operational
// endpoints.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/http/response"
	"github.com/agentraghav/local-library/internal/metrics"
	"github.com/agentraghav/local-library/internal/ratelimit"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

// Options tunes the HTTP layer.
type Options struct {
	// CORSOrigins lists the origins allowed to call /api/v1. Empty allows any.
	CORSOrigins []string

	// FormRateLimit is the number of form submissions allowed per minute
	// per client IP. Zero disables rate limiting.
	FormRateLimit int
	FormRateBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	renderer    *Renderer
	metrics     *metrics.Metrics
	validator   *validation.Validator
	formLimiter *ratelimit.Limiter
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, renderer *Renderer, m *metrics.Metrics, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		services:  services,
		renderer:  renderer,
		metrics:   m,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}
	if opts.FormRateLimit > 0 {
		burst := opts.FormRateBurst
		if burst <= 0 {
			burst = opts.FormRateLimit
		}
		s.formLimiter = ratelimit.New(ratelimit.PerMinute(opts.FormRateLimit), burst)
	}

	s.setupMiddleware()
	s.setupRoutes(opts)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.formLimiter != nil {
		s.formLimiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(opts Options) {
	s.router.NotFound(s.handleNotFound)
	s.router.MethodNotAllowed(s.handleMethodNotAllowed)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.router.Route("/catalog", func(r chi.Router) {
		r.Use(s.limitForms)

		r.Get("/", s.handleHome)
		r.Get("/search", s.handleSearchPage)

		r.Get("/authors", s.handleAuthorList)
		r.Route("/author", s.authorRoutes)

		r.Get("/genres", s.handleGenreList)
		r.Route("/genre", s.genreRoutes)

		r.Get("/books", s.handleBookList)
		r.Route("/book", s.bookRoutes)

		r.Get("/bookinstances", s.handleCopyList)
		r.Route("/bookinstance", s.copyRoutes)
	})

	// JSON API.
	s.router.Group(func(r chi.Router) {
		origins := opts.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))

		humaConfig := huma.DefaultConfig("Local Library API", "1.0.0")
		humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

		s.api = humachi.New(r, humaConfig)
		RegisterErrorHandler()

		s.registerHealthRoutes()
		s.registerAuthorRoutes()
		s.registerGenreRoutes()
		s.registerBookRoutes()
		s.registerCopyRoutes()
		s.registerCatalogRoutes()
	})
}

// wantsJSON reports whether r targets one of the JSON endpoints.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/health"
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		response.NotFound(w, "no route for "+r.URL.Path, s.logger)
		return
	}
	s.renderError(w, r, domainerrors.NotFoundf("page %s not found", r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		response.Error(w, http.StatusMethodNotAllowed, "", r.Method+" is not allowed on "+r.URL.Path, s.logger)
		return
	}
	s.render(w, r, http.StatusMethodNotAllowed, "error", http.StatusText(http.StatusMethodNotAllowed),
		errorPage{Message: r.Method + " is not allowed here"})
}
