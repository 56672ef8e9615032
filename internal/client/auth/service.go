// Package auth управляет сессией персонала в POS клиенте.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/validation"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

// ErrSessionExpired возвращается из Token, когда сохраненный access токен истек
var ErrSessionExpired = errors.New("session expired, please log in again")

// Authenticator обменивает учетные данные на access токен. *api.Client его реализует.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
}

// AuthService реализует Service поверх локального хранилища авторизации
type AuthService struct {
	api     Authenticator
	storage storage.AuthStorage
	bus     *events.Bus
	clock   clock.Clock
	logger  *slog.Logger
}

// Проверка на этапе компиляции, что AuthService реализует Service
var _ Service = (*AuthService)(nil)

// NewAuthService создает AuthService. Если bus не nil, вход и выход
// публикуются как session-started и session-ended.
func NewAuthService(authenticator Authenticator, st storage.AuthStorage, bus *events.Bus, clk clock.Clock, logger *slog.Logger) *AuthService {
	if clk == nil {
		clk = clock.New()
	}
	return &AuthService{
		api:     authenticator,
		storage: st,
		bus:     bus,
		clock:   clk,
		logger:  logger,
	}
}

// Login выполняет аутентификацию сотрудника
func (s *AuthService) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	expiresAt, err := tokenExpiry(resp.AccessToken)
	if err != nil {
		// токен без exp: доверяем expires_in из ответа
		s.logger.Debug("Access token carries no expiry, using expires_in", "error", err)
		expiresAt = s.clock.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	authData := &storage.AuthData{
		Username:    resp.Username,
		UserID:      resp.UserID,
		Role:        resp.Role,
		AccessToken: resp.AccessToken,
		ExpiresAt:   expiresAt.Unix(),
	}
	if authData.Username == "" {
		authData.Username = username
	}

	if err := s.storage.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Logged in", "username", authData.Username, "role", authData.Role, "expires_at", expiresAt)
	s.emit(events.SessionStarted, authData.Username)
	return authData, nil
}

// Logout удаляет локальные данные авторизации.
// Операции в очереди остаются и отправляются после следующего входа.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	s.emit(events.SessionEnded, nil)
	return nil
}

func (s *AuthService) emit(t events.Type, payload any) {
	if s.bus != nil {
		s.bus.Emit(t, s.clock.Now(), payload)
	}
}

// Session возвращает сохраненную сессию
func (s *AuthService) Session(ctx context.Context) (*storage.AuthData, error) {
	return s.storage.GetAuth(ctx)
}

// IsAuthenticated сверяет сохраненную сессию с часами
func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.clock.Now().Unix() < authData.ExpiresAt, nil
}

// Token возвращает access токен для исходящих запросов.
// ErrAuthNotFound проходит без изменений, чтобы анонимные запросы работали.
func (s *AuthService) Token(ctx context.Context) (string, error) {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		return "", err
	}
	if authData.ExpiresAt > 0 && s.clock.Now().Unix() >= authData.ExpiresAt {
		return "", ErrSessionExpired
	}
	return authData.AccessToken, nil
}

// tokenExpiry читает exp из токена без проверки подписи
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return exp.Time, nil
}
