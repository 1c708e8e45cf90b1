package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health() error
}

type HealthHandler struct {
	checks map[string]HealthChecker
}

func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HandleHealth handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := map[string]string{
		"status":  "healthy",
		"service": "zakat-backend",
	}
	status := http.StatusOK
	for name, c := range h.checks {
		if c == nil {
			continue
		}
		if err := c.Health(); err != nil {
			resp[name] = err.Error()
			resp["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp[name] = "ok"
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
