package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(42, 3, "owner@fiesta.local", "owner", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(3), claims.BusinessID)
	assert.Equal(t, "owner@fiesta.local", claims.Email)
	assert.Equal(t, "owner", claims.RoleType)
	assert.False(t, claims.IsSuperAdmin)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("another-secret", time.Hour)

	token, err := manager.GenerateToken(1, 0, "admin@fiesta.local", "owner", true)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, 0, "admin@fiesta.local", "owner", true)
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(7, 2, "staff@fiesta.local", "staff", false)
	require.NoError(t, err)

	refreshed, err := manager.RefreshToken(token)
	require.NoError(t, err)

	claims, err := manager.VerifyToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(2), claims.BusinessID)
	assert.Equal(t, "staff", claims.RoleType)
}
