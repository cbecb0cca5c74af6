package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(42, "jdoe", RoleManager, []int64{10, 20}, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, RoleManager, user.Role)
	assert.Equal(t, []int64{10, 20}, user.WarehouseIDs)
	assert.False(t, user.IsAdmin)
}

func TestJWTService_AdminFlag(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, _, err := svc.GenerateAccessToken(1, "root", RoleAdmin, nil, true)
	require.NoError(t, err)

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Empty(t, user.WarehouseIDs)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(1, "jdoe", RoleWorker, nil, false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	config := DefaultJWTConfig("test-secret")
	config.AccessTokenTTL = -time.Minute
	svc := NewJWTService(config)

	token, _, err := svc.GenerateAccessToken(1, "jdoe", RoleWorker, nil, false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
