// Package server dev сервер, с которым синхронизируется клиент.
// Он отдает ту часть API ресторана, которой пользуется клиент.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/config"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/handlers"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/middleware"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage/sqlite"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/validation"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

const (
	shutdownTimeout = 10 * time.Second
	loginRateLimit  = 10
)

var knownRoles = map[string]bool{
	models.RoleAdmin:     true,
	models.RoleFrontdesk: true,
	models.RoleKitchen:   true,
	models.RoleDelivery:  true,
}

// Server владеет хранилищем, цепочкой HTTP обработчиков и слушателем
type Server struct {
	cfg     config.ServerConfig
	logger  *slog.Logger
	clock   clock.Clock
	storage *sqlite.Storage
	limiter *middleware.PathRateLimiter
	handler http.Handler
}

// New открывает базу, применяет миграции и собирает роутер
func New(ctx context.Context, cfg config.ServerConfig, version string, logger *slog.Logger) (*Server, error) {
	st, err := sqlite.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		clock:   clock.New(),
		storage: st,
	}
	s.handler = s.routes(version)

	return s, nil
}

func (s *Server) routes(version string) http.Handler {
	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(s.cfg.JWTSecret),
		AccessTokenTTL: s.cfg.AccessTTL,
	}

	health := handlers.NewHealthHandler(s.logger, s.storage, version)
	auth := handlers.NewAuthHandler(s.logger, s.storage, jwtConfig, s.clock)
	orders := handlers.NewOrderHandler(s.logger, s.storage, s.clock)
	payments := handlers.NewPaymentHandler(s.logger, s.storage, s.storage, s.clock)

	authenticated := middleware.AuthMiddleware(s.logger, jwtConfig)
	cashier := middleware.RequireRole(s.logger, models.RoleAdmin, models.RoleFrontdesk)
	protect := func(h http.HandlerFunc) http.Handler {
		return authenticated(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.PathHealth, health.Health)
	mux.HandleFunc("POST "+api.PathLogin, auth.Login)

	mux.Handle("GET "+api.PathProfile, protect(auth.Profile))
	mux.Handle("PATCH "+api.PathProfile, protect(auth.UpdateProfile))

	mux.Handle("GET "+api.PathOrders, protect(orders.List))
	mux.Handle("POST "+api.PathOrders, protect(orders.Create))
	mux.Handle("PATCH "+api.PathOrders+"/{id}", protect(orders.Update))

	mux.Handle("POST "+api.PathPayments, authenticated(cashier(http.HandlerFunc(payments.Create))))
	mux.Handle("GET "+api.PathTransactions, protect(payments.List))

	s.limiter = middleware.NewPathRateLimiter(
		[]middleware.PathRateLimit{{Path: api.PathLogin, Rate: loginRateLimit, Window: time.Minute}},
		s.cfg.RateLimit, time.Minute, s.clock, s.logger,
	)

	// logging -> recovery -> rate limit -> router
	var h http.Handler = mux
	h = s.limiter.Middleware(h)
	h = middleware.RecoveryMiddleware(s.logger)(h)
	h = middleware.LoggingWithSkip(s.logger, []string{api.PathHealth})(h)
	return h
}

// Handler возвращает полную цепочку middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

// SeedUser создает учетную запись, если имя свободно.
// Иначе возвращает storage.ErrUserAlreadyExists.
func (s *Server) SeedUser(ctx context.Context, username, password, role string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	if !knownRoles[role] {
		return fmt.Errorf("unknown role %q", role)
	}

	hash, err := handlers.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to seed user %s: %w", username, err)
	}

	s.logger.Info("Seeded user", "username", username, "role", role)
	return nil
}

// Run обслуживает HTTP до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close освобождает rate limiter и базу
func (s *Server) Close() error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.storage.Close()
}
