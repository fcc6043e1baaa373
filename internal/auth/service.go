package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("password and confirmation do not match")
	ErrTermsNotAccepted   = errors.New("terms and conditions not accepted")
	ErrNameRequired       = errors.New("name is required")
	// ErrLogoutTokenInvalid is returned when logout receives a token that was never issued to the caller
	ErrLogoutTokenInvalid = apperror.InvalidInput("Token is invalid or expired")
)

// UserStore is the slice of the user repository the auth flows need
type UserStore interface {
	Create(ctx context.Context, nu user.NewUser) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// TokenPair is returned by register, login and refresh
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	AcceptedTerms   bool
}

// Service handles authentication business logic
type Service struct {
	users                UserStore
	refreshTokens        RefreshTokenRepository
	tokenService         TokenService
	hasher               *PasswordHasher
	logger               *logging.Logger
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
	now                  func() time.Time
}

func NewService(
	users UserStore,
	refreshTokens RefreshTokenRepository,
	tokenService TokenService,
	hasher *PasswordHasher,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		users:                users,
		refreshTokens:        refreshTokens,
		tokenService:         tokenService,
		hasher:               hasher,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
		now:                  time.Now,
	}
}

// Register creates an account and signs the new user in
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, *TokenPair, error) {
	if in.Password != in.PasswordConfirm {
		return nil, nil, ErrPasswordMismatch
	}
	if !in.AcceptedTerms {
		return nil, nil, ErrTermsNotAccepted
	}

	name := user.SanitizeName(in.Name)
	if name == "" {
		return nil, nil, ErrNameRequired
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.NewUser{
		Email:         in.Email,
		Name:          name,
		PasswordHash:  passwordHash,
		AcceptedTerms: true,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, nil, user.ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.generateTokens(ctx, newUser)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", "user_id", newUser.ID.String())
	return newUser, tokens, nil
}

// Login authenticates a user and returns tokens
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(existingUser.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	// Same answer as a wrong password so account state does not leak
	if !existingUser.CanAuthenticate() {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(ctx, existingUser)
	if err != nil {
		return nil, nil, err
	}

	return existingUser, tokens, nil
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued.
// Every unusable token yields ErrInvalidToken.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.refreshTokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if isUnusableRefreshToken(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	// Revoke old refresh token before issuing new ones to prevent reuse
	if err := s.refreshTokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		if isUnusableRefreshToken(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	existingUser, err := s.activeUser(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, existingUser)
}

// Logout revokes the caller's refresh token. Revoking an already revoked token succeeds.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	rt, err := s.refreshTokens.GetRefreshToken(ctx, refreshToken)
	switch {
	case errors.Is(err, ErrRefreshTokenRevoked):
		return nil
	case errors.Is(err, ErrRefreshTokenNotFound), errors.Is(err, ErrRefreshTokenExpired):
		return ErrLogoutTokenInvalid
	case err != nil:
		return fmt.Errorf("failed to get refresh token: %w", err)
	}

	if rt.UserID != userID {
		return ErrLogoutTokenInvalid
	}

	if err := s.refreshTokens.RevokeRefreshToken(ctx, refreshToken); err != nil && !errors.Is(err, ErrRefreshTokenRevoked) {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return ErrLogoutTokenInvalid
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// Authenticate resolves an access token to an active user.
// It returns ErrInvalidToken or ErrExpiredToken for rejected credentials.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*user.User, error) {
	claims, err := s.tokenService.VerifyToken(accessToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.activeUser(ctx, userID)
}

// CreateSuperuser creates an active admin account with accepted terms
func (s *Service) CreateSuperuser(ctx context.Context, email, name, password string) (*user.User, error) {
	if name = user.SanitizeName(name); name == "" {
		return nil, ErrNameRequired
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.users.Create(ctx, user.NewUser{
		Email:         email,
		Name:          name,
		PasswordHash:  passwordHash,
		AcceptedTerms: true,
		IsAdmin:       true,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}

	s.logger.Info("superuser created", "user_id", admin.ID.String())
	return admin, nil
}

// RevokeAll signs the user out everywhere
func (s *Service) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.refreshTokens.RevokeAllUserTokens(ctx, userID)
}

func (s *Service) activeUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.CanAuthenticate() {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// generateTokens creates both access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	accessToken, err := s.tokenService.CreateToken(u.ID, u.Email, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := s.now().Add(s.refreshTokenDuration)
	if err := s.refreshTokens.StoreRefreshToken(ctx, u.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{Refresh: refreshToken, Access: accessToken}, nil
}

func isUnusableRefreshToken(err error) bool {
	return errors.Is(err, ErrRefreshTokenNotFound) ||
		errors.Is(err, ErrRefreshTokenRevoked) ||
		errors.Is(err, ErrRefreshTokenExpired)
}
