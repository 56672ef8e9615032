package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/handlers"
)

// setupTestLogger создает логгер для тестов
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:         []byte("test-secret-key-0123456789"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

var kitchenUser = &models.User{ID: "user123", Username: "kitchen1", Role: models.RoleKitchen}

// identityHandler проверяет, что данные токена попали в контекст
func identityHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserID(r.Context())
		require.True(t, ok, "user_id should be in context")
		assert.Equal(t, "user123", userID)

		username, ok := handlers.GetUsername(r.Context())
		require.True(t, ok, "username should be in context")
		assert.Equal(t, "kitchen1", username)

		role, ok := handlers.GetRole(r.Context())
		require.True(t, ok, "role should be in context")
		assert.Equal(t, models.RoleKitchen, role)

		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := handlers.GenerateAccessToken(cfg, kitchenUser, time.Now())
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), cfg)(identityHandler(t))

	for _, scheme := range []string{"Bearer", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", scheme+" "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cfg := testJWTConfig()

	expired, _, err := handlers.GenerateAccessToken(cfg, kitchenUser, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	otherSecret, _, err := handlers.GenerateAccessToken(handlers.JWTConfig{
		Secret:         []byte("some-other-secret-0123456789"),
		AccessTokenTTL: time.Minute,
	}, kitchenUser, time.Now())
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, handlers.CustomClaims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(cfg.Secret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "no scheme", header: "just-a-token"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong secret", header: "Bearer " + otherSecret},
		{name: "wrong issuer", header: "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(setupTestLogger(), cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.False(t, called, "next handler must not run")
		})
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testJWTConfig()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(setupTestLogger(), cfg)(
		RequireRole(setupTestLogger(), models.RoleAdmin, models.RoleFrontdesk)(ok),
	)

	tests := []struct {
		role       string
		wantStatus int
	}{
		{role: models.RoleAdmin, wantStatus: http.StatusOK},
		{role: models.RoleFrontdesk, wantStatus: http.StatusOK},
		{role: models.RoleKitchen, wantStatus: http.StatusForbidden},
		{role: models.RoleDelivery, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, _, err := handlers.GenerateAccessToken(cfg, &models.User{ID: "u", Username: "staff", Role: tt.role}, time.Now())
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/payments", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("without AuthMiddleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireRole(setupTestLogger(), models.RoleAdmin)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
