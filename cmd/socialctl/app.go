package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-social-api/cmd/socialctl/ui"
	"github.com/redmonkez12/go-social-api/internal/auth"
	"github.com/redmonkez12/go-social-api/internal/config"
	"github.com/redmonkez12/go-social-api/internal/database"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

// app holds the dependencies a command opened. close releases them in reverse order.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	db     *bun.DB
	redis  *redis.Client

	users *user.Repository
	auth  *auth.Service
}

func openDB(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		users:  user.NewRepository(db),
	}, nil
}

// openAll connects to Postgres and Redis and builds the auth service
func openAll(ctx context.Context) (*app, error) {
	a, err := openDB(ctx)
	if err != nil {
		return nil, err
	}

	a.redis, err = database.OpenRedis(ctx, a.cfg.Redis)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	tokenService, err := auth.NewTokenService(a.cfg.Auth)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	a.auth = auth.NewService(
		a.users,
		auth.NewRedisRepository(a.redis),
		tokenService,
		auth.NewPasswordHasher(),
		a.logger,
		a.cfg.Auth.AccessTokenDuration,
		a.cfg.Auth.RefreshTokenDuration,
	)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func printError(cmd *cobra.Command, err error) {
	ui.PrintError(cmd.ErrOrStderr(), err.Error())
}
