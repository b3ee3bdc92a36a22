// Package queue defines message payloads exchanged over the message broker.
package queue

// OTPIssuedEvent is published when a password-reset code is issued.
// The SMS consumer turns it into an outbound text message; nothing
// in the request path waits on that happening.
type OTPIssuedEvent struct {
	Phone    string `json:"phone"`
	Code     string `json:"code"`
	IssuedAt string `json:"issued_at"`
}
