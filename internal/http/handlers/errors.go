package handlers

import (
	"net/http"

	"drowsiness-dashboard/internal/domain"
	"drowsiness-dashboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Storage details
// are logged by the services, not returned to clients.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsStorageUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", "trip storage is unavailable, try again later")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
