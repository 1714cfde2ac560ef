// file: internal/middleware/user_context.go
package middleware

import (
	"net/http"

	"zuna/internal/contextutils"
	"zuna/internal/services"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// HeaderXUserID carries the authenticated user id set by the auth
// gateway in front of this service.
const HeaderXUserID = "X-User-ID"

// UserContext reads the gateway's user header into the request
// context. A present but malformed id is rejected: it means the
// gateway contract is broken, not that the user is anonymous.
func UserContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(HeaderXUserID)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.FromString(header)
			if err != nil || userID == uuid.Nil {
				GetRequestLogger(r.Context()).Warn("Rejected malformed user header",
					zap.String("header", HeaderXUserID),
				)
				writeMiddlewareError(w, r, services.NewUnauthorizedError("invalid user identity"))
				return
			}

			ctx := contextutils.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards routes that only make sense for an authenticated
// user. Must run after UserContext.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := contextutils.GetUserID(r.Context()); !ok {
				writeMiddlewareError(w, r, services.NewUnauthorizedError("authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
