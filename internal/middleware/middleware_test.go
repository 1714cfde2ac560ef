// file: internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"zuna/internal/contextutils"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestIDGeneratesAndEchoesID(t *testing.T) {
	var seen string
	handler := RequestID(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextutils.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/badges", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderXRequestID))
	assert.Equal(t, seen, rec.Header().Get(HeaderXCorrelationID))
}

func TestRequestIDPropagatesGatewayID(t *testing.T) {
	var seen string
	handler := RequestID(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextutils.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "gateway-trace-42")

	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "gateway-trace-42", seen)
}

func TestUserContextParsesHeader(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	var got uuid.UUID
	var ok bool
	handler := UserContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = contextutils.GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/badges", nil)
	req.Header.Set(HeaderXUserID, userID.String())

	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestUserContextRejectsMalformedHeader(t *testing.T) {
	called := false
	handler := RequestID(zap.NewNop())(UserContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/badges", nil)
	req.Header.Set(HeaderXUserID, "not-a-uuid")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserContextPassesAnonymousRequests(t *testing.T) {
	var ok bool
	handler := UserContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = contextutils.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/badges", nil))

	assert.False(t, ok)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUserBlocksAnonymousRequests(t *testing.T) {
	called := false
	handler := RequireUser()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me/badges", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecoveryTurnsPanicsInto500(t *testing.T) {
	handler := RequestID(zap.NewNop())(Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLoggingCapturesStatus(t *testing.T) {
	handler := RequestID(zap.NewNop())(RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
