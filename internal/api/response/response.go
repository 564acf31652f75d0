// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/haulroute/haulroute/internal/api/middleware"
	"github.com/haulroute/haulroute/internal/api/models"
)

// JSON writes a JSON response with the given status code.
// Includes X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ValidationError writes a 400 Bad Request with a validation_error body.
func ValidationError(w http.ResponseWriter, r *http.Request, message string) {
	JSON(w, r, http.StatusBadRequest, models.ErrorResponse{
		Error: message,
		Type:  models.ErrorTypeValidation,
	})
}

// InternalError writes a 500 Internal Server Error with an internal_error body.
// The message is generic; details belong in the logs, not on the wire.
func InternalError(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusInternalServerError, models.ErrorResponse{
		Error: "internal server error",
		Type:  models.ErrorTypeInternal,
	})
}

// RateLimited writes a 429 Too Many Requests with a rate_limit_error body.
func RateLimited(w http.ResponseWriter, r *http.Request, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	JSON(w, r, http.StatusTooManyRequests, models.ErrorResponse{
		Error: "rate limit exceeded, please try again later",
		Type:  models.ErrorTypeRateLimit,
	})
}
