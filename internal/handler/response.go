package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels/internal/repository"
	"rentwheels/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrPastStartDate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest

	// Unauthorized
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Forbidden - actor lacks rights over the booking or car
	case errors.Is(err, service.ErrNotBookingParticipant),
		errors.Is(err, service.ErrRenterTransition),
		errors.Is(err, service.ErrHostOnly),
		errors.Is(err, service.ErrNotCarOwner):
		return http.StatusForbidden

	// Conflict - calendar or state collisions
	case errors.Is(err, service.ErrBookingConflict),
		errors.Is(err, service.ErrBookingClosed),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPlateTaken),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrStaleVersion):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
