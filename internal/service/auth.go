package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skitourspots/internal/captcha"
	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// dummyHash is compared against when login targets a non-existent email so
// both failure paths cost a bcrypt verification. Hash of an unguessable
// throwaway value.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)

// AuthService handles registration, login and the session lifecycle.
// Sessions are opaque tokens: the raw value lives only in the cookie, the
// store keeps a SHA-256 hash with a fixed absolute expiry.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	verifier captcha.Verifier
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, verifier captcha.Verifier) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		verifier: verifier,
	}
}

// Register creates a new account. The captcha is checked first, then email
// and username uniqueness in that order, so the first conflict wins.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.PublicUser, error) {
	if err := s.verifier.Verify(ctx, req.CaptchaToken); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if !model.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", model.ErrValidation)
	}
	if !model.ValidUsername(req.Username) {
		return nil, fmt.Errorf("%w: username must be %d-%d characters of letters, digits, '_' or '-'",
			model.ErrValidation, model.UsernameMinLen, model.UsernameMaxLen)
	}
	if len(req.Password) < model.PasswordMinLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, model.PasswordMinLen)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateEmail
	}

	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hashed),
	}
	// The uniqueness constraints still arbitrate a race between the checks
	// above and the insert.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.Public(), nil
}

// Login authenticates by email and password. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.PublicUser, error) {
	if err := s.verifier.Verify(ctx, req.CaptchaToken); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			// Infrastructure failure, not a credential problem.
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Burn a comparison so the miss costs the same as a mismatch.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user.Public(), nil
}

// CreateSession issues a new opaque session token for the user and persists
// its hash with a 30-day absolute expiry.
func (s *AuthService) CreateSession(ctx context.Context, userID int64) (rawToken string, expiresAt time.Time, err error) {
	rawToken = uuid.NewString()
	expiresAt = time.Now().Add(model.SessionMaxAge)

	session := &model.Session{
		TokenHash: HashSessionToken(rawToken),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	return rawToken, expiresAt, nil
}

// DestroySession removes the session for the raw token. Destroying an
// unknown token is not an error; logout is idempotent.
func (s *AuthService) DestroySession(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if _, err := s.sessions.Delete(ctx, HashSessionToken(rawToken)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Authenticate resolves a raw session token to a user id. Unknown and
// expired tokens yield model.ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (int64, error) {
	if rawToken == "" {
		return 0, model.ErrUnauthenticated
	}

	session, err := s.sessions.FindByTokenHash(ctx, HashSessionToken(rawToken))
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return 0, model.ErrUnauthenticated
		}
		return 0, fmt.Errorf("failed to look up session: %w", err)
	}
	if session.Expired() {
		return 0, model.ErrUnauthenticated
	}

	return session.UserID, nil
}

// CurrentUser returns the public fields for a session's user. A session
// pointing at a since-deleted user yields model.ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// HashSessionToken maps a raw session token to its stored form.
func HashSessionToken(rawToken string) string {
	hash := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(hash[:])
}
