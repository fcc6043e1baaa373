package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/httputil"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

const (
	msgRegistered       = "User registered successfully"
	msgRegisterFailed   = "User Registration Failed"
	msgLoggedIn         = "User logged in successfully"
	msgLoginFailed      = "User Login Failed"
	msgTokenRefreshed   = "Token refreshed successfully"
	msgRefreshFailed    = "Token Refresh Failed"
	msgLoggedOut        = "User logged out successfully"
	msgLogoutFailed     = "User Logout Failed"
	detailInvalidCreds  = "Invalid credentials"
	detailTooManyTries  = "Too many requests, please try again later"
	detailPasswordMatch = "Password and Confirm Password doesn't match"
	detailTermsRequired = "You must accept the terms and conditions"
	detailEmailTaken    = "user with this email already exists."
	detailBlankField    = "This field may not be blank."

	purposeRegister = "register"
	purposeLogin    = "login"
)

// IPRateLimiter throttles unauthenticated endpoints per client IP
type IPRateLimiter interface {
	CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error)
	RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error
}

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter IPRateLimiter
}

func NewHandler(service *Service, rateLimiter IPRateLimiter) *Handler {
	return &Handler{service: service, rateLimiter: rateLimiter}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Name      string `json:"name" validate:"required,max=200"`
	Password  string `json:"password" validate:"required,max=128"`
	Password2 string `json:"password2" validate:"required,max=128"`
	TC        *bool  `json:"tc" validate:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh and logout request body
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RegisterResponse is the data of a successful registration
type RegisterResponse struct {
	Token TokenPair `json:"token"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// LoginResponse is the data of a successful login
type LoginResponse struct {
	Token TokenPair `json:"token"`
	Email string    `json:"email"`
}

// RefreshResponse is the data of a successful refresh
type RefreshResponse struct {
	Token TokenPair `json:"token"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Creates an account and returns a token pair. Limited per client IP.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} httputil.Envelope{data=RegisterResponse}
// @Failure      400 {object} httputil.Envelope "Validation error or rate limited"
// @Failure      500 {object} httputil.Envelope "Internal server error"
// @Router       /user/register/ [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgRegisterFailed, h.register)(w, r)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) error {
	if err := h.throttle(r, purposeRegister); err != nil {
		return err
	}

	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	newUser, tokens, err := h.service.Register(r.Context(), RegisterInput{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		PasswordConfirm: req.Password2,
		AcceptedTerms:   *req.TC,
	})
	if err != nil {
		return registrationError(err)
	}

	httputil.RespondSuccess(w, http.StatusCreated, msgRegistered, RegisterResponse{
		Token: *tokens,
		Email: newUser.Email,
		Name:  newUser.Name,
	})
	return nil
}

func registrationError(err error) error {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return httputil.NewValidationError(httputil.NonFieldErrors, detailPasswordMatch)
	case errors.Is(err, ErrTermsNotAccepted):
		return httputil.NewValidationError(httputil.NonFieldErrors, detailTermsRequired)
	case errors.Is(err, ErrNameRequired):
		return httputil.NewValidationError("name", detailBlankField)
	case errors.Is(err, user.ErrDuplicateEmail):
		return httputil.NewValidationError("email", detailEmailTaken)
	default:
		return err
	}
}

// Login handles user login
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Envelope{data=LoginResponse}
// @Failure      400 {object} httputil.Envelope "Validation error or rate limited"
// @Failure      401 {object} httputil.Envelope "Invalid credentials"
// @Router       /user/login/ [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgLoginFailed, h.login)(w, r)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	if err := h.throttle(r, purposeLogin); err != nil {
		return err
	}

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	existingUser, tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logging.GetLoggerFromContext(r.Context()).Info("login rejected")
			httputil.RespondFailure(w, http.StatusUnauthorized, msgLoginFailed, httputil.Detail{Detail: detailInvalidCreds})
			return nil
		}
		return err
	}

	httputil.RespondSuccess(w, http.StatusOK, msgLoggedIn, LoginResponse{
		Token: *tokens,
		Email: existingUser.Email,
	})
	return nil
}

// Refresh exchanges a refresh token for a new token pair
// @Summary      Refresh tokens
// @Description  The submitted refresh token is revoked and a new pair is returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200 {object} httputil.Envelope{data=RefreshResponse}
// @Failure      400 {object} httputil.Envelope "Validation error"
// @Failure      401 {object} httputil.Envelope "Token Expired or Invalid"
// @Router       /user/token/refresh/ [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgRefreshFailed, h.refresh)(w, r)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) error {
	var req RefreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	tokens, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return apperror.Unauthorized("refresh token rejected").Wrap(err)
		}
		return err
	}

	httputil.RespondSuccess(w, http.StatusOK, msgTokenRefreshed, RefreshResponse{Token: *tokens})
	return nil
}

// Logout revokes the caller's refresh token
// @Summary      Log out
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RefreshRequest true "Refresh token to revoke"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Token is invalid or expired"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/logout/ [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgLogoutFailed, h.logout)(w, r)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	current, ok := user.FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized("no authenticated user")
	}

	var req RefreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return err
	}

	if err := h.service.Logout(r.Context(), current.ID, req.Refresh); err != nil {
		return err
	}

	httputil.RespondSuccess(w, http.StatusOK, msgLoggedOut, nil)
	return nil
}

// throttle counts the request against the caller's IP. Limiter failures are
// logged and the request is let through.
func (h *Handler) throttle(r *http.Request, purpose string) error {
	if h.rateLimiter == nil {
		return nil
	}

	logger := logging.GetLoggerFromContext(r.Context())
	ip := clientIP(r)

	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
		return nil
	}
	if exceeded {
		logger.Warn(fmt.Sprintf("IP rate limit exceeded for %s", purpose), "ip", ip)
		return apperror.RateLimited(detailTooManyTries)
	}

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}
	return nil
}

// clientIP returns the host part of RemoteAddr. Proxy headers are applied
// upstream by chi's RealIP middleware, which may leave no port behind.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
