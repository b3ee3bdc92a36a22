package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOTPCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := NewOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestFormatOTP(t *testing.T) {
	require.Equal(t, "100000", formatOTP(100000))
	require.Equal(t, "999999", formatOTP(999999))
	require.Equal(t, "123456", formatOTP(123456))
}
