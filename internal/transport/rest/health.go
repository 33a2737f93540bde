package rest

import (
	"context"
	"net/http"
	"sort"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

// HealthHandler serves liveness, readiness and detailed health endpoints.
type HealthHandler struct {
	version string
	checks  map[string]Check
	// required lists the checks that gate readiness. Others only show up
	// in /health.
	required map[string]bool
}

// NewHealthHandler creates a HealthHandler. Every check named in required
// must pass for /ready to return 200.
func NewHealthHandler(version string, checks map[string]Check, required ...string) *HealthHandler {
	req := make(map[string]bool, len(required))
	for _, name := range required {
		req[name] = true
	}
	return &HealthHandler{version: version, checks: checks, required: req}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready returns 503 when any required check fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	for _, name := range h.names() {
		if !h.required[name] {
			continue
		}
		if err := h.checks[name](ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health runs every check with latency. A failed optional check reports
// "degraded", a failed required one "down".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.checks))
	overall := "ok"

	for _, name := range h.names() {
		start := time.Now()
		err := h.checks[name](ctx)
		latency := time.Since(start)

		if err != nil {
			components[name] = CompStatus{Status: "down", Error: err.Error()}
			switch {
			case h.required[name]:
				overall = "down"
			case overall == "ok":
				overall = "degraded"
			}
			continue
		}
		components[name] = CompStatus{Status: "ok", Latency: latency.String()}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) names() []string {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
