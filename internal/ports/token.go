package ports

import "cryptojournal/internal/domain"

// TokenClaims is the authenticated identity carried by a session token.
// The journal core trusts the UserID it receives and performs no credential
// verification of its own.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenSigner issues and verifies session tokens for authenticated users.
type TokenSigner interface {
	// Sign issues a token for the given user.
	Sign(user *domain.User) (string, error)
	// Verify checks a token and returns its claims.
	// Returns an error wrapping ErrUnauthorized for invalid or expired tokens.
	Verify(token string) (*TokenClaims, error)
}
