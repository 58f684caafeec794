package jwt

import (
	"testing"
	"time"

	"novadent-crm/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: "test-secret-key",
		Expiry: expiry,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, tokenID, err := service.GenerateToken(userID, "admin@novadent.mx", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@novadent.mx", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.GenerateToken(uuid.New(), "staff@novadent.mx", "staff")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateMalformedToken(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{Secret: "another-secret", Expiry: time.Hour})

	token, _, err := other.GenerateToken(uuid.New(), "staff@novadent.mx", "staff")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiry(t *testing.T) {
	service := newTestService(2 * time.Hour)
	assert.Equal(t, 2*time.Hour, service.Expiry())
}
