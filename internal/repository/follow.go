package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skitourspots/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		if foreignKeyViolation(err) {
			return false, model.ErrUserNotFound
		}
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	if _, err := r.db.ExecContext(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	// Unfollowing someone you don't follow is a no-op.
	return nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	query := `
		SELECT u.id, u.email, u.username, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	users := []model.PublicUser{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	query := `
		SELECT u.id, u.email, u.username, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
	`

	users := []model.PublicUser{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}
