package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 7, "VENDOR", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "VENDOR", claims["role"])
}

func TestRefreshToken(t *testing.T) {
	r1, err := NewRefreshToken(30)
	require.NoError(t, err)
	r2, err := NewRefreshToken(30)
	require.NoError(t, err)

	assert.Len(t, r1.Raw, 96) // 48 random bytes hex encoded
	assert.NotEqual(t, r1.Raw, r2.Raw)

	// Hashing is deterministic and never echoes the raw token.
	assert.Equal(t, HashRefreshRaw(r1.Raw), HashRefreshRaw(r1.Raw))
	assert.NotEqual(t, r1.Raw, HashRefreshRaw(r1.Raw))
	assert.Len(t, HashRefreshRaw(r1.Raw), 64)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, VerifyPassword(hash, "hunter2hunter2"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2hunter2"))

	// A zero (unset) cost falls back to the bcrypt default and still
	// verifies.
	hash, err = HashPassword("hunter2hunter2", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2hunter2"))
}
