package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoJWKS       = errors.New("no JWKS URL provided")
)

// StandardClaims represents the standard claims in a JWT token.
type StandardClaims struct {
	Sub    string `json:"sub"`
	UserId string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenValidator validates bearer tokens and extracts user identity.
type TokenValidator interface {
	// ValidateToken verifies the token and returns a stable user identity
	// (email when available, otherwise user_id/sub).
	ValidateToken(tokenString string) (string, error)
	// ExtractUserID returns the provider UID used for document store paths.
	ExtractUserID(tokenString string) (string, error)
}
