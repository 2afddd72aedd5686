package model

import "time"

// Session is the sole authorization artifact: an opaque identifier bound
// to exactly one ops_id, valid until ExpiresAt.
type Session struct {
	ID        string    `json:"session_id"`
	OpsID     string    `json:"ops_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SeatalkSession tracks the device-login handshake: a device registers a
// session_id, and an out-of-band confirmation flips it to authenticated.
type SeatalkSession struct {
	SessionID     string  `json:"session_id"`
	Email         *string `json:"email"`
	Authenticated bool    `json:"authenticated"`
}
