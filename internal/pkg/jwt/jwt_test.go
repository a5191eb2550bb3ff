package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("op-1", RoleClerk)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims["sub"])
	assert.Equal(t, "clerk", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_Errors(t *testing.T) {
	_, _, err := NewJWTService("test-secret", "1h").GenerateAccessToken("op-1", Role("owner"))
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, _, err = NewJWTService("test-secret", "soon").GenerateAccessToken("op-1", RoleAdmin)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	token, _, err := svc.GenerateAccessToken("op-1", RoleAdmin)
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	require.NoError(t, svc.RevokeToken(token))
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_RejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	err := svc.RevokeToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _, err := NewJWTService("other-secret", "1h").GenerateAccessToken("op-1", RoleAdmin)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.RevokeToken(other), ErrInvalidToken)
	assert.False(t, svc.IsTokenRevoked(other))
}
