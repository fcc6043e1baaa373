package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/redmonkez12/go-social-api/docs" // Swagger docs
	"github.com/redmonkez12/go-social-api/internal/auth"
	"github.com/redmonkez12/go-social-api/internal/config"
	"github.com/redmonkez12/go-social-api/internal/database"
	"github.com/redmonkez12/go-social-api/internal/friendship"
	httpServer "github.com/redmonkez12/go-social-api/internal/http"
	"github.com/redmonkez12/go-social-api/internal/httputil"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/ratelimit"
	"github.com/redmonkez12/go-social-api/internal/user"
)

// @title           Social API
// @version         1.0
// @description     Accounts, user search and friend requests over JSON.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"token_format", cfg.Auth.TokenFormat,
	)

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisClient, err := database.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := user.NewRepository(db)
	refreshTokens := auth.NewRedisRepository(redisClient)
	friendStore := friendship.NewBunStore(db)

	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.Auth.RateLimitMax, cfg.Auth.RateLimitWindow)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Services
	authService := auth.NewService(
		userRepo,
		refreshTokens,
		tokenService,
		auth.NewPasswordHasher(),
		logger,
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
	friendService := friendship.NewService(friendStore, logger, cfg.Friends.RequestLimit, cfg.Friends.RequestWindow)

	// HTTP
	paginator := httputil.NewPaginator(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	handlers := httpServer.Handlers{
		Auth:    auth.NewHandler(authService, rateLimiter),
		User:    user.NewHandler(userRepo, paginator),
		Friends: friendship.NewHandler(friendService, paginator),
	}
	checks := map[string]httpServer.HealthCheck{
		"database": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
	authMiddleware := auth.NewMiddleware(authService)

	router := httpServer.NewRouter(cfg, handlers, authMiddleware.RequireAuth, checks, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
