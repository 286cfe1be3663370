package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-purposes"

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	service, err := NewJWTService(testSecret, 15*time.Minute)
	require.NoError(t, err)
	return service
}

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService(t)
	assert.Equal(t, 15*time.Minute, service.Expiry())
}

func TestNewJWTService_WeakSecret(t *testing.T) {
	_, err := NewJWTService("short", time.Minute)

	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestJWTService_GenerateAccessToken_Success(t *testing.T) {
	service := newTestJWTService(t)

	token, expiresAt, err := service.GenerateAccessToken("merch-team", RoleAdmin)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestJWTService_ValidateAccessToken_Valid(t *testing.T) {
	service := newTestJWTService(t)

	token, _, err := service.GenerateAccessToken("merch-team", RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, "merch-team", claims.Operator)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "merch-team", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	service := newTestJWTService(t)
	service.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := service.GenerateAccessToken("merch-team", RoleAdmin)
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateAccessToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(t)
	other, err := NewJWTService("another-secret-key-that-is-long-enough", time.Minute)
	require.NoError(t, err)

	token, _, err := other.GenerateAccessToken("merch-team", RoleAdmin)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_Malformed(t *testing.T) {
	service := newTestJWTService(t)

	tests := []string{"", "not-a-token", "a.b.c"}
	for _, token := range tests {
		_, err := service.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestJWTService_ValidateAccessToken_WrongIssuer(t *testing.T) {
	service := newTestJWTService(t)
	claims := Claims{
		Operator: "intruder",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_NoneAlgorithm(t *testing.T) {
	service := newTestJWTService(t)
	claims := Claims{
		Operator: "intruder",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
