// file: internal/middleware/recovery.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"zuna/internal/responseutil"
	"zuna/internal/services"

	"go.uber.org/zap"
)

// Recovery turns handler panics into 500 responses instead of dropped
// connections. The stack is logged, never sent to the client.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestLogger := GetRequestLogger(r.Context())
					requestLogger.Error("Panic recovered",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)

					writeMiddlewareError(w, r, services.NewInternalError("an unexpected error occurred"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// writeMiddlewareError writes an error through the response builder
// when one is on the context, falling back to plain http.Error with
// the status the error maps to.
func writeMiddlewareError(w http.ResponseWriter, r *http.Request, err error) {
	if builder, ok := responseutil.GetBuilder(r.Context()).(responseutil.ResponseBuilder); ok {
		builder.WriteError(w, r, err)
		return
	}

	status := http.StatusInternalServerError
	if serviceErr := services.GetServiceError(err); serviceErr != nil {
		status = serviceErr.GetStatusCode()
	}
	http.Error(w, http.StatusText(status), status)
}
