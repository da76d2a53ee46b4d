package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/auth"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTM() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "biblioteca-test", time.Minute, time.Hour)
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	am := NewAuthMiddleware(newTM())
	var hit bool

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	am.Auth(okHandler(&hit)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	am := NewAuthMiddleware(newTM())
	var hit bool

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	am.Auth(okHandler(&hit)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestAuthPutsClaimsInContext(t *testing.T) {
	tm := newTM()
	am := NewAuthMiddleware(tm)
	access, _, _, err := tm.GeneratePair("user-1", []string{models.RoleUsuario})
	require.NoError(t, err)

	var got *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		require.True(t, ok)
		got = c
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	am.Auth(next).ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, []string{models.RoleUsuario}, got.Roles)
}

func TestRequireRole(t *testing.T) {
	tm := newTM()
	am := NewAuthMiddleware(tm)

	adminToken, _, _, err := tm.GeneratePair("admin-1", []string{models.RoleAdmin})
	require.NoError(t, err)
	userToken, _, _, err := tm.GeneratePair("user-1", []string{models.RoleUsuario})
	require.NoError(t, err)

	var hit bool
	h := am.Auth(RequireRole(models.RoleAdmin)(okHandler(&hit)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, hit)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hit)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	var hit bool
	h := RequireRole(models.RoleAdmin)(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}
