package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"` // "-" hides from JSON output
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PublicUser is the user shape exposed by the API. It never carries
// password material.
type PublicUser struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Public strips a User down to its API representation.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// Account field constraints. Username length and charset match the users
// table check; password length is a service-level floor.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 8
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidUsername reports whether the username satisfies the account rules.
func ValidUsername(username string) bool {
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return false
	}
	return usernameRe.MatchString(username)
}

// ValidEmail reports whether the email looks like a deliverable address.
func ValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	return emailRe.MatchString(strings.TrimSpace(email))
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateUsername is returned when the username is already taken
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is the base error for malformed request bodies
	ErrValidation = errors.New("validation failed")
)
