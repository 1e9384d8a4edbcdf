package supla

import (
	"errors"
	"fmt"
)

// ErrInvalidServer indicates a client was created without a server address.
var ErrInvalidServer = errors.New("supla server address is required")

// APIError is returned when the Supla Cloud answers with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supla api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}
