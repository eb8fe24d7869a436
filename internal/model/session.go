package model

import (
	"errors"
	"time"
)

// SessionMaxAge is the absolute session lifetime. Expiry is fixed at
// creation; activity does not extend it.
const SessionMaxAge = 30 * 24 * time.Hour

// SessionCookieName is the cookie carrying the raw session token.
const SessionCookieName = "session_token"

// Session maps an opaque cookie token to a user. Only the SHA-256 hash of
// the raw token is stored; the raw value exists in the cookie alone.
type Session struct {
	TokenHash string    `db:"token_hash" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Expired reports whether the session's absolute lifetime has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

var (
	// ErrSessionNotFound is returned for unknown or expired tokens
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnauthenticated is returned when a request carries no valid session
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrCaptchaInvalid is returned when the verification service rejects a token
	ErrCaptchaInvalid = errors.New("invalid captcha")
)
