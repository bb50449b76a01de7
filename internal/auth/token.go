package auth

import (
	"fmt"
	"time"

	"garastore/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeSession = "session"
	tokenTypeReset   = "reset"
)

// TokenService issues and verifies identity tokens.
type TokenService interface {
	// Issue signs a session token for user.
	Issue(user *model.User) (string, error)

	// IssueReset signs a short-lived password reset token for user.
	IssueReset(user *model.User) (string, error)

	// Verify checks a session token and returns the identity it asserts.
	Verify(token string) (*Identity, error)

	// VerifyReset checks a reset token and returns the user id it names.
	VerifyReset(token string) (uuid.UUID, error)
}

type claims struct {
	UserID     string `json:"_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	IsAdmin    bool   `json:"isAdmin"`
	IsSupplier bool   `json:"isSupplier"`
	Type       string `json:"typ"`
	jwt.RegisteredClaims
}

// jwtService implements TokenService with HS256 signed JWTs.
type jwtService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

// NewTokenService creates an HS256 token service.
func NewTokenService(secret string, sessionTTL, resetTTL time.Duration) TokenService {
	return &jwtService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

func (s *jwtService) Issue(user *model.User) (string, error) {
	return s.sign(claims{
		UserID:     user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		Type:       tokenTypeSession,
	}, s.sessionTTL)
}

func (s *jwtService) IssueReset(user *model.User) (string, error) {
	return s.sign(claims{
		UserID: user.ID.String(),
		Type:   tokenTypeReset,
	}, s.resetTTL)
}

func (s *jwtService) sign(c claims, ttl time.Duration) (string, error) {
	now := s.now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		// Unique per issuance so a replaced reset token never equals the new one.
		ID: uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Verify(token string) (*Identity, error) {
	c, err := s.parse(token, tokenTypeSession)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	return &Identity{
		UserID:     userID,
		Name:       c.Name,
		Email:      c.Email,
		IsAdmin:    c.IsAdmin,
		IsSupplier: c.IsSupplier,
	}, nil
}

func (s *jwtService) VerifyReset(token string) (uuid.UUID, error) {
	c, err := s.parse(token, tokenTypeReset)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}
	return userID, nil
}

func (s *jwtService) parse(token, tokenType string) (*claims, error) {
	if token == "" {
		return nil, model.ErrMissingToken
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	if c.Type != tokenType {
		return nil, model.ErrInvalidToken
	}
	return &c, nil
}
