package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"skitourspots/internal/model"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, spotID int64) (bool, error) {
	query := `
		INSERT INTO favorite_spots (user_id, spot_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, spot_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, spotID)
	if err != nil {
		if foreignKeyViolation(err) {
			return false, model.ErrSpotNotFound
		}
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, spotID int64) error {
	query := `DELETE FROM favorite_spots WHERE user_id = $1 AND spot_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, spotID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	// Removing an absent favorite is a no-op.
	return nil
}

func (r *favoriteRepository) ListSpotsByUser(ctx context.Context, userID int64) ([]model.Spot, error) {
	query := `
		SELECT s.id, s.user_id, s.name, s.description, s.difficulty, s.elevation,
		       s.lat AS "location.lat", s.lng AS "location.lng",
		       s.access, s.best_season, s.images, s.created_at
		FROM favorite_spots f
		JOIN spots s ON s.id = f.spot_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	spots := []model.Spot{}
	if err := r.db.SelectContext(ctx, &spots, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorite spots: %w", err)
	}
	return spots, nil
}
