package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
	assert.False(t, CheckPassword("hunter22", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	userID := uuid.New()

	signed, err := tokens.Issue(userID)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := NewTokens("test-secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokens("other-secret", time.Hour).Parse(signed)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)
	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokens("test-secret", time.Hour).Parse("not.a.token")
	require.Error(t, err)
}
