package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/go-social-api/internal/auth"
	"github.com/redmonkez12/go-social-api/internal/config"
	"github.com/redmonkez12/go-social-api/internal/friendship"
	"github.com/redmonkez12/go-social-api/internal/httputil"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Auth    *auth.Handler
	User    *user.Handler
	Friends *friendship.Handler
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware func(http.Handler) http.Handler, checks map[string]HealthCheck, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(secureHeaders(!cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(httputil.ExposeErrors(cfg.Server.IsDevelopment()))
	r.Use(middleware.Compress(5))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/health", handleHealth(checks))

	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/user", func(r chi.Router) {
		r.Post("/register/", h.Auth.Register)
		r.Post("/login/", h.Auth.Login)
		r.Post("/token/refresh/", h.Auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/logout/", h.Auth.Logout)
			r.Get("/detail/", h.User.Profile)
			r.Get("/search/", h.User.Search)

			r.Post("/friend-requests/", h.Friends.SendRequest)
			r.Put("/friend-request/{id}/", h.Friends.RespondToRequest)
			r.Get("/friend-requests-pending/", h.Friends.ListPending)
			r.Get("/friends-list/", h.Friends.ListFriends)
		})
	})

	return r
}

// handleHealth pings every dependency
// @Summary      Health check
// @Description  Reports database and cache reachability
// @Tags         health
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Failure      503 {object} httputil.Envelope
// @Router       /health [get]
func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logging.GetLoggerFromContext(r.Context()).Error("health check failed", "dependency", name, "error", err.Error())
				status[name] = "unavailable"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			httputil.RespondFailure(w, http.StatusServiceUnavailable, "API is unhealthy", status)
			return
		}
		httputil.RespondSuccess(w, http.StatusOK, "API is running", status)
	}
}
