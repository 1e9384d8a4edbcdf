package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
)

// DevicesHandler handles entity listing endpoints
type DevicesHandler struct {
	controller device.Controller
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(controller device.Controller) *DevicesHandler {
	return &DevicesHandler{controller: controller}
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Description  Returns every entity loaded from the Supla servers, optionally filtered by type
// @Tags         devices
// @Produce      json
// @Param        type  query     string  false  "Entity type (cover, switch)"
// @Success      200   {object}  types.ListDevicesResponse
// @Failure      500   {object}  types.ErrorResponse  "Controller error"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.Query("type")

	devices, err := h.controller.ListDevices(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]types.DeviceWithState, 0, len(devices))
	for _, d := range devices {
		if filter != "" && d.Type != filter {
			continue
		}

		dws := toDeviceWithState(d)

		// State is read from the last poll; errors leave it empty
		if state, err := h.controller.GetDeviceState(ctx, d.ID); err == nil {
			dws.State = state
		}

		result = append(result, dws)
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: result,
		Count:   len(result),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device details
// @Description  Returns details for a specific entity by unique ID
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Entity unique ID"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Controller error"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	d, err := h.controller.GetDevice(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	result := toDeviceWithState(*d)
	if state, err := h.controller.GetDeviceState(ctx, d.ID); err == nil {
		result.State = state
	}

	c.JSON(http.StatusOK, types.DeviceResponse{
		Device: result,
	})
}

func toDeviceWithState(d device.Device) types.DeviceWithState {
	return types.DeviceWithState{
		ID:                    d.ID,
		Name:                  d.Name,
		Type:                  d.Type,
		Class:                 d.Class,
		Server:                d.Server,
		ChannelID:             d.ChannelID,
		Function:              d.Function,
		Available:             d.Available,
		UpdateIntervalSeconds: d.UpdateInterval.Seconds(),
		StateSchema:           d.StateSchema,
	}
}
