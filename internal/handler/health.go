package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/scoutai/scout/internal/models"
)

const version = "1.0.0"

// HealthChecker is implemented by backends that can report connectivity
type HealthChecker interface {
	TestConnection(ctx context.Context) error
}

// HealthHandler handles GET /health with optional dependency checks
type HealthHandler struct {
	archive HealthChecker
	store   HealthChecker
}

func NewHealthHandler(archive, store HealthChecker) *HealthHandler {
	return &HealthHandler{archive: archive, store: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	// Use a short timeout for health checks so they don't block
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.archive != nil {
		if err := h.archive.TestConnection(ctx); err != nil {
			checks["elasticsearch"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["elasticsearch"] = "ok"
		}
	} else {
		checks["elasticsearch"] = "disabled"
	}

	if h.store != nil {
		if err := h.store.TestConnection(ctx); err != nil {
			checks["postgres"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
