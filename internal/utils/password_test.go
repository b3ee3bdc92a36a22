package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("OldPass1", 4)
	require.NoError(t, err)
	require.NotEqual(t, "OldPass1", hash)

	require.True(t, VerifyPassword(hash, "OldPass1"))
	require.False(t, VerifyPassword(hash, "NewPass2"))
	require.False(t, VerifyPassword("not-a-hash", "OldPass1"))
}
