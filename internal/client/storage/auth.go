package storage

import (
	"context"
)

//go:generate moq -out authstorage_mock.go . AuthStorage

// AuthStorage описывает хранение сессии персонала на клиенте.
// Отсюда читается bearer токен, который уходит с каждой операцией из очереди.
type AuthStorage interface {
	// SaveAuth сохраняет данные авторизации, заменяя прежнюю сессию
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth получает сохраненные данные авторизации
	// Возвращает ErrAuthNotFound, если данных нет
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет сохраненные данные авторизации (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated проверяет, есть ли действующая (неистекшая) авторизация
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData данные авторизации в хранилище
type AuthData struct {
	Username    string `json:"username"`
	UserID      string `json:"user_id"`
	Role        string `json:"role,omitempty"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
