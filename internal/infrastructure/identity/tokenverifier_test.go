package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subhub/internal/shared/config"
)

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		Email: "jordan@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenVerifier_Valid(t *testing.T) {
	verifier := NewTokenVerifier(&config.IdentityConfig{JWTSecret: "test-secret"})
	tokenString := signToken(t, "test-secret", "sub-1234", time.Now().Add(time.Hour))

	claims, err := verifier.Verify(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "sub-1234", claims.SubjectID)
	assert.Equal(t, "jordan@example.com", claims.Email)
}

func TestTokenVerifier_Expired(t *testing.T) {
	verifier := NewTokenVerifier(&config.IdentityConfig{JWTSecret: "test-secret"})
	tokenString := signToken(t, "test-secret", "sub-1234", time.Now().Add(-time.Hour))

	_, err := verifier.Verify(tokenString)

	assert.Error(t, err)
}

func TestTokenVerifier_WrongSecret(t *testing.T) {
	verifier := NewTokenVerifier(&config.IdentityConfig{JWTSecret: "test-secret"})
	tokenString := signToken(t, "other-secret", "sub-1234", time.Now().Add(time.Hour))

	_, err := verifier.Verify(tokenString)

	assert.Error(t, err)
}

func TestTokenVerifier_MissingSubject(t *testing.T) {
	verifier := NewTokenVerifier(&config.IdentityConfig{JWTSecret: "test-secret"})
	tokenString := signToken(t, "test-secret", "", time.Now().Add(time.Hour))

	_, err := verifier.Verify(tokenString)

	assert.Error(t, err)
}
