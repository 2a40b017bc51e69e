// Package server exposes the layout generator and viewport computation over
// HTTP, for hosts that draw hierarchy views in another process.
//
// Routes:
//
//	GET /healthz
//	GET /v1/layouts?count=3&width=1200&height=800[&lookahead=false][&policy=equal]
//	GET /v1/viewport?count=3&width=1200&height=800[&animating=true]
//
// Responses are cached by request parameters in a [cache.Cache].
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/hierarchy"
	"github.com/matzehuels/stackview/pkg/layout"
)

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration

	// WidthPolicy names an entry of layout.WidthPolicies. Requests may
	// override it with ?policy=.
	WidthPolicy   string
	MinPanelWidth float64

	// AnimationDuration is reported in viewport transitions.
	AnimationDuration time.Duration

	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.WidthPolicy == "" {
		o.WidthPolicy = "default"
	}
	if o.MinPanelWidth <= 0 {
		o.MinPanelWidth = layout.DefaultMinPanelWidth
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = hierarchy.DefaultAnimationDuration
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Server serves the layout API.
type Server struct {
	opts   Options
	cache  *cache.Instrumented
	logger *log.Logger
}

// New creates a server.
func New(opts Options) *Server {
	opts = opts.withDefaults()
	return &Server{
		opts:   opts,
		cache:  cache.NewInstrumented(opts.Cache),
		logger: opts.Logger,
	}
}

// Handler returns the routed handler with request ID, logging and panic
// recovery middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layouts", s.handleLayouts)
		r.Get("/viewport", s.handleViewport)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Error: "no such route"})
	})
	return r
}

// HTTPServer wraps Handler in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string, readTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
