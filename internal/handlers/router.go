package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lingobridge/api/internal/platform/httpx"
)

// RouteRegistrar registers a set of routes against the provided router.
type RouteRegistrar func(r chi.Router)

type routerConfig struct {
	basePath    string
	middlewares []func(http.Handler) http.Handler

	health        *HealthHandlers
	translations  *TranslationHandlers
	contributions *ContributionHandlers
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const (
	defaultAPIPrefix  = "/api"
	defaultTimeout    = 30 * time.Second
	errorNotFoundCode = "route_not_found"
)

// NewRouter constructs the chi router with shared middleware and the API routes.
func NewRouter(opts ...Option) chi.Router {
	cfg := routerConfig{
		basePath: defaultAPIPrefix,
		middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Timeout(defaultTimeout),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Route(cfg.basePath, func(api chi.Router) {
		if cfg.health != nil {
			api.Get("/health", cfg.health.Health)
		} else {
			registerNotImplementedRoute(api, "/health", "health")
		}
		if cfg.translations != nil {
			api.Post("/translate", cfg.translations.Translate)
		} else {
			registerNotImplementedRoute(api, "/translate", "translate")
		}
		if cfg.contributions != nil {
			api.Post("/contribute", cfg.contributions.Contribute)
		} else {
			registerNotImplementedRoute(api, "/contribute", "contribute")
		}
	})

	return r
}

// WithBasePath overrides the API route prefix.
func WithBasePath(path string) Option {
	return func(cfg *routerConfig) {
		if path != "" {
			cfg.basePath = path
		}
	}
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithHealthHandlers configures the handlers serving /health.
func WithHealthHandlers(h *HealthHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.health = h
	}
}

// WithTranslationHandlers configures the handlers serving /translate.
func WithTranslationHandlers(h *TranslationHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.translations = h
	}
}

// WithContributionHandlers configures the handlers serving /contribute.
func WithContributionHandlers(h *ContributionHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.contributions = h
	}
}

func registerNotImplementedRoute(r chi.Router, path string, name string) {
	r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("not_implemented", fmt.Sprintf("%s route not implemented", name), http.StatusNotImplemented))
	})
}
