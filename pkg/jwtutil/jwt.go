package jwtutil

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var signingKey []byte

// UserClaims represents the claims carried by the identity provider's
// access tokens. The subject is the provider's user id (a uuid) and is
// used as the audit actor for every mutation.
type UserClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Initialize sets the signing key used to validate access tokens
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
}

// ValidateToken validates and parses an access token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
