package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/config"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/logging"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
)

var (
	// Информация о версии задается через ldflags при сборке
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// seed описывает учетную запись, создаваемую при старте
type seed struct {
	username string
	password string
	role     string
}

// parseSeed разбирает значение --seed-user вида user:password[:role]
func parseSeed(value string) (seed, error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return seed{}, fmt.Errorf("invalid seed user %q, expected user:password[:role]", value)
	}
	s := seed{username: parts[0], password: parts[1], role: models.RoleFrontdesk}
	if len(parts) == 3 && parts[2] != "" {
		s.role = parts[2]
	}
	return s, nil
}

func newRootCommand() *cobra.Command {
	v := config.New()
	var (
		configFile string
		seedUsers  []string
	)

	cmd := &cobra.Command{
		Use:           "adakings-server",
		Short:         "Development backend for the Adakings client",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServer(); err != nil {
				return err
			}

			seeds := make([]seed, 0, len(seedUsers))
			for _, value := range seedUsers {
				s, err := parseSeed(value)
				if err != nil {
					return err
				}
				seeds = append(seeds, s)
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg.Server, Version, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					logger.Error("Failed to close server storage", "error", err)
				}
			}()

			for _, s := range seeds {
				err := srv.SeedUser(ctx, s.username, s.password, s.role)
				switch {
				case errors.Is(err, storage.ErrUserAlreadyExists):
					logger.Info("Seed user already exists", "username", s.username)
				case err != nil:
					return err
				}
			}

			return srv.Run(ctx)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("Adakings Server\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		Version, BuildDate, GitCommit))

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Path to config file")
	f.String("addr", "", "Listen address")
	f.String("db", "", "Path to SQLite database")
	f.String("jwt-secret", "", "HMAC secret for access tokens")
	f.String("log-level", "", "Log level (debug, info, warn, error)")
	f.StringArrayVar(&seedUsers, "seed-user", nil, "Create user:password[:role] on start (repeatable)")

	for key, flag := range map[string]string{
		"server.addr":       "addr",
		"server.db_path":    "db",
		"server.jwt_secret": "jwt-secret",
		"log.level":         "log-level",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
