package handlers

import (
	"net/http"
	"time"

	"github.com/lingobridge/api/internal/repositories"
)

// HealthHandlers serves the service health endpoint.
type HealthHandlers struct {
	pairs   func() []string
	checker repositories.HealthRepository
	started time.Time
}

// HealthOption customises the health handlers.
type HealthOption func(*HealthHandlers)

// WithSupportedPairs wires the supported pair keys reported by /health.
func WithSupportedPairs(pairs func() []string) HealthOption {
	return func(h *HealthHandlers) {
		h.pairs = pairs
	}
}

// WithStoreCheck wires a store connectivity probe into /health.
func WithStoreCheck(checker repositories.HealthRepository) HealthOption {
	return func(h *HealthHandlers) {
		h.checker = checker
	}
}

// NewHealthHandlers constructs handlers for the health endpoint.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{started: time.Now()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Health reports service status, the loaded language pairs, and uptime.
// A failing store probe degrades the status but the endpoint stays 200 so the
// dictionary-only tiers remain advertised as usable.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.checker != nil {
		if err := h.checker.Check(r.Context()); err != nil {
			status = "degraded"
		}
	}

	var pairs []string
	if h.pairs != nil {
		pairs = h.pairs()
	}
	if pairs == nil {
		pairs = []string{}
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":               status,
		"dictionary_languages": pairs,
		"uptime":               time.Since(h.started).String(),
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	})
}
