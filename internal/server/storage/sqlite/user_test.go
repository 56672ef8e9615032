package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
)

func newTestUser(username string) *models.User {
	return &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "hash-" + username,
		Role:         models.RoleFrontdesk,
		CreatedAt:    time.Now(),
	}
}

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	withLogin := newTestUser("testuser2")
	withLogin.LastLogin = timePtr(time.Now())
	withLogin.FirstName = "Ama"
	withLogin.Email = "ama@example.com"

	tests := []struct {
		user *models.User
		name string
	}{
		{name: "create new user successfully", user: newTestUser("testuser1")},
		{name: "create user with profile and last login", user: withLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.CreateUser(ctx, tt.user))

			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.Username, retrieved.Username)
			assert.Equal(t, tt.user.PasswordHash, retrieved.PasswordHash)
			assert.Equal(t, tt.user.Role, retrieved.Role)
			assert.Equal(t, tt.user.FirstName, retrieved.FirstName)
			assert.Equal(t, tt.user.Email, retrieved.Email)
			assert.Equal(t, tt.user.LastLogin == nil, retrieved.LastLogin == nil)
		})
	}
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateUser(ctx, newTestUser("duplicate")))

	err := s.CreateUser(ctx, newTestUser("duplicate"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := newTestUser("findme")
	require.NoError(t, s.CreateUser(ctx, user))

	byName, err := s.GetUserByUsername(ctx, "findme")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "findme", byID.Username)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := newTestUser("profile")
	require.NoError(t, s.CreateUser(ctx, user))

	user.FirstName = "Kofi"
	user.LastName = "Mensah"
	user.Email = "kofi@example.com"
	user.Phone = "0240000000"
	// роль и пароль через профиль не меняются
	user.Role = models.RoleAdmin
	require.NoError(t, s.UpdateProfile(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kofi", retrieved.FirstName)
	assert.Equal(t, "Mensah", retrieved.LastName)
	assert.Equal(t, "kofi@example.com", retrieved.Email)
	assert.Equal(t, "0240000000", retrieved.Phone)
	assert.Equal(t, models.RoleFrontdesk, retrieved.Role)

	err = s.UpdateProfile(ctx, &models.User{ID: "nonexistent"})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := newTestUser("logintest")
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		loginTime time.Time
		wantError error
		name      string
		userID    string
	}{
		{
			name:      "update last login for existing user",
			userID:    user.ID,
			loginTime: time.Now(),
		},
		{
			name:      "update last login for non-existent user",
			userID:    "nonexistent",
			loginTime: time.Now(),
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdateLastLogin(ctx, tt.userID, tt.loginTime)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			retrieved, err := s.GetUserByID(ctx, tt.userID)
			require.NoError(t, err)
			require.NotNil(t, retrieved.LastLogin)
			assert.WithinDuration(t, tt.loginTime, *retrieved.LastLogin, time.Second)
		})
	}
}

// Вспомогательная функция
func timePtr(t time.Time) *time.Time {
	return &t
}
