package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity-provider-issued user identity. The provider
// signs tokens with the shared HS256 secret; this API only validates them.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Image  string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for the given claims. Used by tests and local
// tooling; production tokens come from the identity provider.
func GenerateJWT(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT parses and verifies an HS256 token and returns its claims.
func ValidateJWT(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
