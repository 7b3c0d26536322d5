package handlers

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/infrastructure/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	checks      map[string]Pinger
	log         zerolog.Logger
}

// NewHealthHandler constructs the handler. checks maps a dependency name to its probe.
func NewHealthHandler(serviceName string, checks map[string]Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		checks:      checks,
		log:         log.With().Str("handler", "health").Logger(),
	}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.serviceName,
		"status":  "ok",
	})
}

// Health handles GET /health
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} responses.StatusResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready handles GET /readyz
// @Summary Readiness probe
// @Description Pings the database and the graph store
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ready := true
	results := make(gin.H, len(names))
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			ready = false
			results[name] = err.Error()
			logger.WithRequest(ctx, h.log).Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}
