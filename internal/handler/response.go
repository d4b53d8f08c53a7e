package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/middleware"
	"ridepool/internal/repository"
	"ridepool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unclassified errors are logged and hidden from the caller.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// badRequest answers a body that could not be decoded.
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// callerID returns the authenticated user. Routes using it sit behind
// middleware.AuthMiddleware.
func callerID(c *gin.Context) string {
	id, _ := middleware.IdentityFrom(c)
	return id.UserID
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// State, capacity and uniqueness failures are all conflicts with the
	// current store contents.
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
