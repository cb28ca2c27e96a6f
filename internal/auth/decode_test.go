package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUnverified_IgnoresSignature(t *testing.T) {
	token, _, err := NewJWTManager("server-only-secret", time.Hour).GenerateToken(9, "jo@ex.com")
	require.NoError(t, err)

	claims, err := DecodeUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, "jo@ex.com", claims.Email)
}

func TestDecodeUnverified_Garbage(t *testing.T) {
	_, err := DecodeUnverified("definitely.not.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = DecodeUnverified("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiresInFuture(t *testing.T) {
	issued := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	manager := NewJWTManager("k", time.Hour).WithClock(fixedClock(issued))
	token, expiresAt, err := manager.GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	assert.True(t, ExpiresInFuture(token, issued))
	assert.True(t, ExpiresInFuture(token, expiresAt.Add(-time.Nanosecond)))
	assert.False(t, ExpiresInFuture(token, expiresAt))
	assert.False(t, ExpiresInFuture(token, expiresAt.Add(time.Minute)))
	assert.False(t, ExpiresInFuture("garbage", issued))
}
