package utils // helpers for one-time code generation

import (
	"crypto/rand"     // secure random source for codes
	"encoding/binary" // converts random bytes to integers
)

// Bounds of the one-time code range.  Six decimal digits with the
// first digit never zero, so every code prints at fixed width.
const (
	otpMin  = 100000
	otpSpan = 900000 // number of values in [100000, 999999]
)

// NewOTPCode returns a uniformly random six-digit code in the range
// 100000–999999 as a string.  The draw comes from crypto/rand; a
// 64-bit sample reduced modulo 900000 keeps the bias below 2^-44,
// which is negligible for this purpose.
func NewOTPCode() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint64(buf[:])
	code := otpMin + n%otpSpan
	return formatOTP(code), nil
}

// formatOTP renders a code value as six ASCII digits.
func formatOTP(v uint64) string {
	b := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b)
}
