package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// JWTSigner implements ports.TokenSigner with HS256-signed tokens.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSigner creates a signer. The TTL defaults to seven days when zero.
func NewJWTSigner(secret string, ttl time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl}, nil
}

type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Sign issues a token for the given user.
func (s *JWTSigner) Sign(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify checks a token and returns its claims.
func (s *JWTSigner) Verify(token string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid session token", ports.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.UserID == "" {
		return nil, fmt.Errorf("%w: malformed token claims", ports.ErrUnauthorized)
	}
	return &ports.TokenClaims{UserID: claims.UserID, Email: claims.Email}, nil
}
