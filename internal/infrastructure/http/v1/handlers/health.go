package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"textile/internal/infrastructure/http/v1/dto"
)

// Pinger is satisfied by the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ready handles readiness probe (can the register be served?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status: "error",
			Checks: map[string]string{"database": "unhealthy: " + err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Checks: map[string]string{"database": "healthy"},
	})
}

// RegisterRoutes registers health routes.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Live)
	rg.GET("/ready", h.Ready)
}
