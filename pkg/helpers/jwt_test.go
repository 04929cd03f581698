package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tok, exp, err := m.GenerateAccessToken(42, "Alice", "alice@example.com", "buyer")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.Kind)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tok, _, err := m.GenerateRefreshToken(7)
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AccountID)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, _, err := m.GenerateAccessToken(1, "A", "a@example.com", "seller")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)

	// a refresh token must not validate as an access token and vice versa
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)

	other := NewJWTManager("different", "different", time.Hour, 24*time.Hour)
	_, err = other.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	tok, _, err := m.GenerateAccessToken(1, "A", "a@example.com", "buyer")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, err := m.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
	_, err = m.ParseAccessToken("")
	assert.Error(t, err)
}
