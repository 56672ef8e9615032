package storage

import (
	"context"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

//go:generate moq -out userstorage_mock.go . UserStorage

// UserStorage описывает хранение учетных записей персонала
type UserStorage interface {
	// CreateUser создает нового пользователя
	// Возвращает ErrUserAlreadyExists, если имя занято
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername получает пользователя по имени
	// Возвращает ErrUserNotFound, если пользователя нет
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID получает пользователя по ID
	// Возвращает ErrUserNotFound, если пользователя нет
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile обновляет имя, email и телефон
	// Возвращает ErrUserNotFound, если пользователя нет
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
