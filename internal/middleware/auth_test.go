package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/pkg/tokens"
)

func TestRequireAuth(t *testing.T) {
	tg := tokens.NewTokenGenerator("test-secret-key-that-is-long-enough")
	mw := NewAuthMiddleware(tg)

	token, err := tg.GenerateAccessToken(&models.User{
		ID:   "client-1",
		Name: "Maria Silva",
		Role: models.RoleClient,
	})
	require.NoError(t, err)

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "client-1", GetUserID(r.Context()))
		assert.Equal(t, "Maria Silva", GetUserName(r.Context()))
		assert.Equal(t, models.RoleClient, GetRole(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tg := tokens.NewTokenGenerator("test-secret-key-that-is-long-enough")
	mw := NewAuthMiddleware(tg)

	clientToken, err := tg.GenerateAccessToken(&models.User{ID: "c1", Name: "Cliente", Role: models.RoleClient})
	require.NoError(t, err)
	adminToken, err := tg.GenerateAccessToken(&models.User{ID: "a1", Name: "Michel Felix", Role: models.RoleAdmin})
	require.NoError(t, err)

	handler := mw.RequireRole(models.RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+clientToken)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
