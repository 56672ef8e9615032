package auth

import (
	"context"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service описывает операции с сессией персонала, которые использует CLI.
// Сессия хранится локально, поэтому операции в очереди сохраняют bearer токен
// между перезапусками и без сети.
type Service interface {
	// Login аутентифицирует сотрудника и сохраняет сессию локально
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)

	// Logout удаляет локальную сессию
	Logout(ctx context.Context) error

	// Session возвращает сохраненную сессию
	// Возвращает storage.ErrAuthNotFound, если никто не вошел
	Session(ctx context.Context) (*storage.AuthData, error)

	// IsAuthenticated сообщает, есть ли неистекшая сессия
	IsAuthenticated(ctx context.Context) (bool, error)

	// Token возвращает access токен сохраненной сессии
	Token(ctx context.Context) (string, error)
}
