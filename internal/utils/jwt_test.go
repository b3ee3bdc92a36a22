package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "MANAGER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "MANAGER", claims["role"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "DRIVER", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	require.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	require.Len(t, rt.Raw, 96)

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64)
	require.NotEqual(t, h1, HashRefreshRaw(rt.Raw+"x"))
}

func TestNewResetTokenUnique(t *testing.T) {
	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)
	require.Len(t, a, 48)
	require.NotEqual(t, a, b)
}
