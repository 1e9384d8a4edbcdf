package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
)

// ControlHandler handles entity state and action endpoints
type ControlHandler struct {
	controller device.Controller
}

// NewControlHandler creates a new control handler
func NewControlHandler(controller device.Controller) *ControlHandler {
	return &ControlHandler{controller: controller}
}

// GetState handles GET /devices/:id/state
// @Summary      Get device state
// @Description  Returns the state of an entity from its last refresh
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Entity unique ID"
// @Success      200  {object}  types.StateResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Controller error"
// @Router       /devices/{id}/state [get]
func (h *ControlHandler) GetState(c *gin.Context) {
	id := c.Param("id")

	state, err := h.controller.GetDeviceState(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Device:    id,
		State:     state,
		Timestamp: time.Now(),
	})
}

// SetState handles POST /devices/:id/state
// @Summary      Set device state
// @Description  Applies a state change validated against the entity's schema
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Entity unique ID"
// @Param        request  body      object  true  "State to set, e.g. {\"action\": \"open\"} or {\"state\": \"ON\"}"
// @Success      200      {object}  types.StateResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      502      {object}  types.ErrorResponse  "Supla server error"
// @Failure      500      {object}  types.ErrorResponse  "Controller error"
// @Router       /devices/{id}/state [post]
func (h *ControlHandler) SetState(c *gin.Context) {
	id := c.Param("id")

	var req map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	state, err := h.controller.SetDeviceState(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Device:    id,
		State:     state,
		Timestamp: time.Now(),
	})
}

// Refresh handles POST /devices/:id/refresh
// @Summary      Refresh device state
// @Description  Re-fetches the channel state unless the entity's update interval has not elapsed
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Entity unique ID"
// @Success      200  {object}  types.StateResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      502  {object}  types.ErrorResponse  "Supla server error"
// @Router       /devices/{id}/refresh [post]
func (h *ControlHandler) Refresh(c *gin.Context) {
	id := c.Param("id")

	state, err := h.controller.RefreshDevice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StateResponse{
		Device:    id,
		State:     state,
		Timestamp: time.Now(),
	})
}

// Action handles POST /devices/:id/action
// @Summary      Execute a channel action
// @Description  Forwards an action and its parameters to the Supla server without local validation
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "Entity unique ID"
// @Param        request  body  types.ActionRequest  true  "Action and parameters"
// @Success      204      "Action accepted"
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      502      {object}  types.ErrorResponse  "Supla server error"
// @Router       /devices/{id}/action [post]
func (h *ControlHandler) Action(c *gin.Context) {
	id := c.Param("id")

	var req types.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "action is required",
		})
		return
	}

	if err := h.controller.ExecuteAction(c.Request.Context(), id, req.Action, req.Parameters); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
