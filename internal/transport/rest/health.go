package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// backendPinger checks reachability of an upstream dependency.
type backendPinger interface {
	Ping(ctx context.Context) error
}

const (
	pingTimeout = 3 * time.Second
	indexText   = "Nothing to see here.\nCheckout README.md to start.\n"

	statusOK   = "ok"
	statusDown = "down"
)

// Check is one named readiness dependency.
type Check struct {
	Name   string
	Pinger backendPinger
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	checks  []Check
	version string
	log     *slog.Logger
}

// NewHealthHandler creates a HealthHandler. Ready and Health fail when any
// check fails.
func NewHealthHandler(logger *slog.Logger, version string, checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		version: version,
		log:     logger.With("handler", "health"),
	}
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
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready is the readiness probe: 200 when every check passes, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.run(r.Context())
	status, code := statusOK, http.StatusOK
	if !ok {
		status, code = statusDown, http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports every check with its latency, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.run(r.Context())
	status, code := statusOK, http.StatusOK
	if !ok {
		status, code = statusDown, http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) run(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.checks))
	ok := true
	for _, c := range h.checks {
		start := time.Now()
		if err := c.Pinger.Ping(ctx); err != nil {
			h.log.WarnContext(ctx, "health check failed",
				slog.String("component", c.Name),
				slog.String("error", err.Error()),
			)
			components[c.Name] = CompStatus{Status: statusDown}
			ok = false
			continue
		}
		components[c.Name] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}
	}
	return components, ok
}

// Index answers the root path so a bare GET confirms the process is up.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexText)) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
