package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:         []byte("test-secret-key-0123456789"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Username:     "frontdesk1",
		PasswordHash: string(hash),
		Role:         models.RoleFrontdesk,
		FirstName:    "Ama",
		CreatedAt:    time.Now(),
	}
}

// usersWith возвращает мок хранилища с одним пользователем
func usersWith(user *models.User) *storage.UserStorageMock {
	return &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if user != nil && username == user.Username {
				cp := *user
				return &cp, nil
			}
			return nil, storage.ErrUserNotFound
		},
		GetUserByIDFunc: func(ctx context.Context, userID string) (*models.User, error) {
			if user != nil && userID == user.ID {
				cp := *user
				return &cp, nil
			}
			return nil, storage.ErrUserNotFound
		},
		UpdateLastLoginFunc: func(ctx context.Context, userID string, lastLogin time.Time) error {
			return nil
		},
		UpdateProfileFunc: func(ctx context.Context, u *models.User) error {
			return nil
		},
	}
}

func newAuthHandler(users storage.UserStorage) *AuthHandler {
	return NewAuthHandler(setupTestLogger(), users, testJWTConfig(), clock.New())
}

func postJSON(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(method, path, bytes.NewReader(raw))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := testUser(t, "correct-horse")
	users := usersWith(user)
	handler := newAuthHandler(users)

	req := postJSON(t, http.MethodPost, api.PathLogin, api.LoginRequest{Username: "frontdesk1", Password: "correct-horse"})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "frontdesk1", resp.Username)
	assert.Equal(t, models.RoleFrontdesk, resp.Role)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	claims, err := ValidateAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleFrontdesk, claims.Role)

	require.Len(t, users.UpdateLastLoginCalls(), 1)
	assert.Equal(t, "user-1", users.UpdateLastLoginCalls()[0].UserID)
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	user := testUser(t, "correct-horse")

	tests := []struct {
		body       any
		name       string
		wantStatus int
	}{
		{name: "invalid json", body: "not an object", wantStatus: http.StatusBadRequest},
		{name: "invalid username", body: api.LoginRequest{Username: "a", Password: "x"}, wantStatus: http.StatusBadRequest},
		{name: "missing password", body: api.LoginRequest{Username: "frontdesk1"}, wantStatus: http.StatusBadRequest},
		{name: "unknown user", body: api.LoginRequest{Username: "nobody", Password: "x"}, wantStatus: http.StatusUnauthorized},
		{name: "wrong password", body: api.LoginRequest{Username: "frontdesk1", Password: "wrong"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := usersWith(user)
			handler := newAuthHandler(users)

			w := httptest.NewRecorder()
			handler.Login(w, postJSON(t, http.MethodPost, api.PathLogin, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Message)
			assert.Empty(t, users.UpdateLastLoginCalls())
		})
	}
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	users := &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, errors.New("database is locked")
		},
	}
	handler := newAuthHandler(users)

	w := httptest.NewRecorder()
	handler.Login(w, postJSON(t, http.MethodPost, api.PathLogin, api.LoginRequest{Username: "frontdesk1", Password: "x"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthHandler_Login_UpdateLastLoginError(t *testing.T) {
	users := usersWith(testUser(t, "correct-horse"))
	users.UpdateLastLoginFunc = func(ctx context.Context, userID string, lastLogin time.Time) error {
		return errors.New("disk full")
	}
	handler := newAuthHandler(users)

	w := httptest.NewRecorder()
	handler.Login(w, postJSON(t, http.MethodPost, api.PathLogin, api.LoginRequest{Username: "frontdesk1", Password: "correct-horse"}))

	// ошибка обновления last_login не мешает входу
	assert.Equal(t, http.StatusOK, w.Code)
}

func withIdentity(req *http.Request, userID string) *http.Request {
	ctx := WithClaims(req.Context(), &CustomClaims{UserID: userID, Username: "frontdesk1", Role: models.RoleFrontdesk})
	return req.WithContext(ctx)
}

func TestAuthHandler_Profile(t *testing.T) {
	handler := newAuthHandler(usersWith(testUser(t, "pw")))

	t.Run("returns profile of the token owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Profile(w, withIdentity(httptest.NewRequest(http.MethodGet, api.PathProfile, nil), "user-1"))

		require.Equal(t, http.StatusOK, w.Code)
		var profile models.Profile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
		assert.Equal(t, "frontdesk1", profile.Username)
		assert.Equal(t, "Ama", profile.FirstName)
		assert.Equal(t, models.RoleFrontdesk, profile.Role)
	})

	t.Run("missing identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Profile(w, httptest.NewRequest(http.MethodGet, api.PathProfile, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Profile(w, withIdentity(httptest.NewRequest(http.MethodGet, api.PathProfile, nil), "user-2"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	users := usersWith(testUser(t, "pw"))
	handler := newAuthHandler(users)

	req := postJSON(t, http.MethodPatch, api.PathProfile, api.ProfileUpdateRequest{Email: "ama@example.com"})
	w := httptest.NewRecorder()
	handler.UpdateProfile(w, withIdentity(req, "user-1"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, users.UpdateProfileCalls(), 1)
	saved := users.UpdateProfileCalls()[0].User
	assert.Equal(t, "ama@example.com", saved.Email)
	assert.Equal(t, "Ama", saved.FirstName, "empty fields are left unchanged")

	var profile models.Profile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "ama@example.com", profile.Email)
}

func TestAuthHandler_UpdateProfile_Invalid(t *testing.T) {
	users := usersWith(testUser(t, "pw"))
	handler := newAuthHandler(users)

	for name, body := range map[string]api.ProfileUpdateRequest{
		"email": {Email: "not-an-email"},
		"phone": {Phone: "call me"},
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.UpdateProfile(w, withIdentity(postJSON(t, http.MethodPatch, api.PathProfile, body), "user-1"))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, users.UpdateProfileCalls())
}

func TestValidateAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{ID: "user-1", Username: "kitchen1", Role: models.RoleKitchen}

	token, _, err := GenerateAccessToken(cfg, user, time.Now())
	require.NoError(t, err)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "kitchen1", claims.Username)
	assert.Equal(t, TokenIssuer, claims.Issuer)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ValidateAccessToken(JWTConfig{Secret: []byte("another-secret-0123456789")}, token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old, _, err := GenerateAccessToken(cfg, user, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		_, err = ValidateAccessToken(cfg, old)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateAccessToken(cfg, "not.a.token")
		assert.Error(t, err)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("other")))
}
