package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/go-social-api/internal/httputil"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

// Authenticator resolves a bearer token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*user.User, error)
}

// Middleware handles authentication for protected routes
type Middleware struct {
	authenticator Authenticator
}

func NewMiddleware(authenticator Authenticator) *Middleware {
	return &Middleware{authenticator: authenticator}
}

// RequireAuth validates the bearer token and puts the user in the request context.
// Every rejected credential gets the same 401 body.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		token, ok := bearerToken(r)
		if !ok {
			logger.Debug("missing or malformed authorization header")
			httputil.RespondUnauthorized(w)
			return
		}

		current, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken) {
				logger.Debug("access token rejected", "reason", err.Error())
				httputil.RespondUnauthorized(w)
				return
			}
			httputil.WriteError(w, r, httputil.MessageUnauthorized, err)
			return
		}

		ctx := user.WithUser(r.Context(), current)
		ctx = logging.WithLogger(ctx, logger.WithFields(map[string]any{"user_id": current.ID.String()}))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
