// file: internal/response/status.go
package response

import (
	"net/http"

	"zuna/internal/services"
)

// ===============================
// STATUS HELPERS
// ===============================

// WriteBadRequest writes a 400 response
func (b *Builder) WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	b.WriteError(w, r, services.NewValidationError(message, nil))
}

// WriteUnauthorized writes a 401 response
func (b *Builder) WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "authentication required"
	}
	b.WriteError(w, r, services.NewUnauthorizedError(message))
}

// WriteNotFound writes a 404 response
func (b *Builder) WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		message = "resource not found"
	}
	b.WriteError(w, r, services.NewNotFoundError(message))
}

// WriteServiceUnavailable writes a 503 response with a Retry-After hint
func (b *Builder) WriteServiceUnavailable(w http.ResponseWriter, r *http.Request, retryAfter string) {
	if retryAfter != "" {
		w.Header().Set("Retry-After", retryAfter)
	}
	b.WriteError(w, r, services.NewServiceUnavailableError("service temporarily unavailable"))
}

// ===============================
// HEALTH RESPONSES
// ===============================

// WriteHealth writes a health payload with a status code matching the
// reported state: degraded stays 200 so load balancers keep routing,
// unhealthy returns 503.
func (b *Builder) WriteHealth(w http.ResponseWriter, r *http.Request, health *services.HealthStatus) {
	statusCode := http.StatusOK
	if health != nil && health.Status == services.HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	b.WriteJSON(w, r, b.Success(r.Context(), health), statusCode)
}
