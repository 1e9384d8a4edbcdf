package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
)

// ServersHandler lists the registered Supla servers
type ServersHandler struct {
	controller device.Controller
}

// NewServersHandler creates a new servers handler
func NewServersHandler(controller device.Controller) *ServersHandler {
	return &ServersHandler{controller: controller}
}

// ListServers handles GET /servers
// @Summary      List servers
// @Description  Returns the authenticated Supla servers with their resolved update interval
// @Tags         servers
// @Produce      json
// @Success      200  {object}  types.ListServersResponse
// @Failure      500  {object}  types.ErrorResponse  "Controller error"
// @Router       /servers [get]
func (h *ServersHandler) ListServers(c *gin.Context) {
	servers, err := h.controller.ListServers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]types.ServerResponse, 0, len(servers))
	for _, s := range servers {
		result = append(result, types.ServerResponse{
			Name:                  s.Name,
			UpdateIntervalSeconds: s.UpdateInterval.Seconds(),
			Entities:              s.Entities,
		})
	}

	c.JSON(http.StatusOK, types.ListServersResponse{
		Servers: result,
		Count:   len(result),
	})
}
