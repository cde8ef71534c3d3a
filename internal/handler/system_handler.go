package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/response"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// SystemHandler exposes liveness, readiness and telemetry endpoints.
type SystemHandler struct {
	telemetry *service.TelemetryService
	checks    map[string]Check
	timeout   time.Duration
}

// NewSystemHandler constructs SystemHandler. checks are run by Ready.
func NewSystemHandler(telemetry *service.TelemetryService, checks map[string]Check) *SystemHandler {
	return &SystemHandler{telemetry: telemetry, checks: checks, timeout: 2 * time.Second}
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe pinging the database and Redis
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	state := "ready"
	if status != http.StatusOK {
		state = "unavailable"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}

// Prometheus serves the Prometheus scrape endpoint.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.telemetry == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.telemetry.Handler().ServeHTTP(c.Writer, c.Request)
}

// Telemetry godoc
// @Summary Process counters snapshot
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/telemetry [get]
func (h *SystemHandler) Telemetry(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.telemetry.Snapshot(), nil)
}
