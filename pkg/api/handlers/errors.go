package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/supla"
)

// writeError maps controller errors to HTTP responses
func writeError(c *gin.Context, err error) {
	var apiErr *supla.APIError

	switch {
	case errors.Is(err, device.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
	case errors.Is(err, device.ErrValidation):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, device.ErrUnsupported):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "unsupported",
			Message: err.Error(),
		})
	case errors.Is(err, device.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "integration_not_set_up",
			Message: err.Error(),
		})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "supla_error",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "controller_error",
			Message: err.Error(),
		})
	}
}
