package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller device.Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller device.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the Supla integration
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Integration is set up"
// @Failure      503  {object}  types.HealthResponse  "Integration setup failed"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	servers, _ := h.controller.ListServers(c.Request.Context())

	integration := "not_set_up"
	status := "degraded"
	httpStatus := http.StatusServiceUnavailable

	if h.controller.IsConnected() {
		integration = "set_up"
		status = "healthy"
		httpStatus = http.StatusOK
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:      status,
		Integration: integration,
		Servers:     len(servers),
		Timestamp:   time.Now(),
	})
}
