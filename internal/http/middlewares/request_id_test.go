package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func echoRequestID(t *testing.T, captured *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithRequestID_GeneratesWhenAbsent(t *testing.T) {
	var got string
	h := Chain(echoRequestID(t, &got), WithRequestID())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	rid := rec.Header().Get("X-Request-ID")
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, got)
}

func TestWithRequestID_PropagatesClientID(t *testing.T) {
	var got string
	h := Chain(echoRequestID(t, &got), WithRequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "front-abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "front-abc-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "front-abc-123", got)
}

func TestWithRequestID_RejectsOversizedClientID(t *testing.T) {
	var got string
	h := Chain(echoRequestID(t, &got), WithRequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	rid := rec.Header().Get("X-Request-ID")
	assert.NotEmpty(t, rid)
	assert.NotContains(t, rid, "xxx")
	assert.Equal(t, rid, got)
}
