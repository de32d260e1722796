package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cvision/internal/cache"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
)

func newTestIssuer(t *testing.T) *jwtx.Issuer {
	t.Helper()
	iss, err := jwtx.NewIssuer("cvision-test", "access-secret", "refresh-secret")
	require.NoError(t, err)
	return iss
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, GetUserID(r.Context()))
		assert.NotNil(t, GetClaims(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	iss := newTestIssuer(t)
	bl := blacklist.New(cache.NewMemory("test:", time.Minute))

	token, _, err := iss.Sign("user-1", "ana@example.com", jwtx.KindAccess)
	require.NoError(t, err)

	h := Chain(protectedEcho(t), RequireAuth(iss, bl))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	iss := newTestIssuer(t)
	h := Chain(protectedEcho(t), RequireAuth(iss, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "missing bearer token")
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	iss := newTestIssuer(t)

	// Un refresh token no sirve como access token
	token, _, err := iss.Sign("user-1", "ana@example.com", jwtx.KindRefresh)
	require.NoError(t, err)

	h := Chain(protectedEcho(t), RequireAuth(iss, nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	iss := newTestIssuer(t)
	bl := blacklist.New(cache.NewMemory("test:", time.Minute))

	token, _, err := iss.Sign("user-1", "ana@example.com", jwtx.KindAccess)
	require.NoError(t, err)

	// Logout: el token entra a la blacklist
	bl.Add(context.Background(), token)

	h := Chain(protectedEcho(t), RequireAuth(iss, bl))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "token revoked")
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	iss := newTestIssuer(t)
	h := Chain(protectedEcho(t), RequireAuth(iss, nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
