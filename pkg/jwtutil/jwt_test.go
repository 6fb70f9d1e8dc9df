package jwtutil

import (
	"testing"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key string, claims UserClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key"})

	signed := signToken(t, "test-key", UserClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "9f6f6a7e-0000-0000-0000-000000000001",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "9f6f6a7e-0000-0000-0000-000000000001", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestValidateTokenWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key"})

	signed := signToken(t, "other-key", UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key"})

	signed := signToken(t, "test-key", UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ValidateToken(signed)
	assert.Error(t, err)
}
