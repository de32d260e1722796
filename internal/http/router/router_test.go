package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cvision/internal/cache"
	healthctrl "github.com/dropDatabas3/cvision/internal/http/controllers/health"
	resumectrl "github.com/dropDatabas3/cvision/internal/http/controllers/resume"
	resumedto "github.com/dropDatabas3/cvision/internal/http/dto/resume"
	healthsvc "github.com/dropDatabas3/cvision/internal/http/services/health"
	resumesvc "github.com/dropDatabas3/cvision/internal/http/services/resume"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
)

type stubResumeService struct{}

func (stubResumeService) Upload(context.Context, string, string, io.Reader) (*resumedto.UploadResponse, error) {
	return &resumedto.UploadResponse{ResumeID: "r1", FileName: "cv.pdf", Status: "uploaded"}, nil
}

func (stubResumeService) List(context.Context, string) (*resumedto.ListResponse, error) {
	return &resumedto.ListResponse{Resumes: []resumedto.Item{}}, nil
}

func (stubResumeService) Get(context.Context, string, string) (*resumedto.Item, error) {
	return nil, resumesvc.ErrNotFound
}

func testRouter(t *testing.T) (http.Handler, *jwtx.Issuer, *blacklist.Blacklist) {
	t.Helper()

	issuer, err := jwtx.NewIssuer("cvision-test", "access-secret", "refresh-secret")
	require.NoError(t, err)

	bl := blacklist.New(cache.NewMemory("test:", time.Minute))

	health := healthctrl.NewHealthController(healthsvc.NewHealthService(healthsvc.Deps{
		Issuer:  issuer,
		DBCheck: func(context.Context) error { return nil },
	}))

	h := New(Deps{
		Health:    health,
		Issuer:    issuer,
		Blacklist: bl,
		Resume:    resumectrl.NewController(stubResumeService{}),
	})
	return h, issuer, bl
}

func TestRouter_Healthz(t *testing.T) {
	h, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alive")
}

func TestRouter_Readyz(t *testing.T) {
	h, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status     string                     `json:"status"`
		Components map[string]json.RawMessage `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ready", body.Status)
	require.Contains(t, body.Components, "postgres")
	require.Contains(t, body.Components, "jwt")
}

func TestRouter_NotFound(t *testing.T) {
	h, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	h, _, _ := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/resumes", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ValidTokenReachesHandler(t *testing.T) {
	h, issuer, _ := testRouter(t)

	token, _, err := issuer.Sign("user-1", "u@example.com", jwtx.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "resumes")
}

func TestRouter_RevokedTokenRejected(t *testing.T) {
	h, issuer, bl := testRouter(t)

	token, _, err := issuer.Sign("user-1", "u@example.com", jwtx.KindAccess)
	require.NoError(t, err)
	bl.Add(context.Background(), token)

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
