package api

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles liveness and welcome requests.
type HealthHandler struct {
	pinger  Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new health handler. Pings give up after
// timeout.
func NewHealthHandler(pinger Pinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{pinger: pinger, timeout: timeout}
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Time   string `json:"time"`
}

// HandleHealth handles GET /api/health requests. It answers 503 when the
// store cannot be reached.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Store: "up", Time: time.Now().UTC().Format(time.RFC3339)}
	status := http.StatusOK
	if err := h.pinger.Ping(ctx); err != nil {
		resp.Status, resp.Store = "degraded", "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// HandleWelcome handles GET / requests.
func (h *HealthHandler) HandleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the faculty directory API",
		"docs":    "/api-docs",
	})
}
