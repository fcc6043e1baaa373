package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "social-api"

	claimUserID = "user_id"
	claimEmail  = "email"
)

// implicitAssertion binds v4.local tokens to access-token use. It is
// authenticated but never transmitted.
var implicitAssertion = []byte("social-api/access")

// PasetoService issues v4.local tokens (XChaCha20 + BLAKE2b, symmetric key)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	parser       paseto.Parser
	now          func() time.Time
}

func NewPasetoService(symmetricKey []byte) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	// Expiry is checked in VerifyToken so expired and forged tokens stay distinguishable
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	return &PasetoService{symmetricKey: key, parser: parser, now: time.Now}, nil
}

func (s *PasetoService) CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error) {
	issuedAt := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID.String())
	token.SetJti(uuid.NewString())
	token.SetIssuedAt(issuedAt)
	token.SetNotBefore(issuedAt)
	token.SetExpiration(issuedAt.Add(duration))
	token.SetString(claimUserID, userID.String())
	token.SetString(claimEmail, email)

	return token.V4Encrypt(s.symmetricKey, implicitAssertion), nil
}

func (s *PasetoService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	token, err := s.parser.ParseV4Local(s.symmetricKey, tokenStr, implicitAssertion)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, err := pasetoClaims(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !s.now().Before(claims.ExpiresAt) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

func pasetoClaims(token *paseto.Token) (*TokenClaims, error) {
	var (
		claims TokenClaims
		err    error
	)

	if claims.UserID, err = token.GetString(claimUserID); err != nil {
		return nil, err
	}
	if claims.Email, err = token.GetString(claimEmail); err != nil {
		return nil, err
	}
	if claims.IssuedAt, err = token.GetIssuedAt(); err != nil {
		return nil, err
	}
	if claims.ExpiresAt, err = token.GetExpiration(); err != nil {
		return nil, err
	}
	return &claims, nil
}
