package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"skitourspots/internal/model"
)

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a session repository backed by the same
// relational store as the rest of the gateway.
func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		s.TokenHash,
		s.UserID,
		s.ExpiresAt,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByTokenHash treats expired rows as absent; expiry is absolute and
// checked against the store's clock.
func (r *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	query := `
		SELECT token_hash, user_id, expires_at, created_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`

	var s model.Session
	err := r.db.GetContext(ctx, &s, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) (bool, error) {
	query := `DELETE FROM sessions WHERE token_hash = $1`
	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < $1`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
