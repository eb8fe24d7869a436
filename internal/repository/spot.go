package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"skitourspots/internal/model"
)

type spotRepository struct {
	db *sqlx.DB
}

func NewSpotRepository(db *sqlx.DB) SpotRepository {
	return &spotRepository{db: db}
}

// spotColumns aliases lat/lng into the nested Location struct for sqlx.
const spotColumns = `
	id, user_id, name, description, difficulty, elevation,
	lat AS "location.lat", lng AS "location.lng",
	access, best_season, images, created_at
`

func (r *spotRepository) List(ctx context.Context) ([]model.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots ORDER BY created_at DESC, id DESC`

	spots := []model.Spot{}
	if err := r.db.SelectContext(ctx, &spots, query); err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}
	return spots, nil
}

func (r *spotRepository) GetByID(ctx context.Context, id int64) (*model.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

	var s model.Spot
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot by id: %w", err)
	}
	return &s, nil
}

func (r *spotRepository) Create(ctx context.Context, s *model.Spot) error {
	query := `
		INSERT INTO spots (user_id, name, description, difficulty, elevation, lat, lng, access, best_season, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	if s.Images == nil {
		s.Images = pq.StringArray{}
	}
	err := r.db.QueryRowxContext(ctx, query,
		s.UserID,
		s.Name,
		s.Description,
		s.Difficulty,
		s.Elevation,
		s.Location.Lat,
		s.Location.Lng,
		s.Access,
		s.BestSeason,
		s.Images,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert spot: %w", err)
	}
	return nil
}

func (r *spotRepository) ListByUser(ctx context.Context, userID int64) ([]model.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	spots := []model.Spot{}
	if err := r.db.SelectContext(ctx, &spots, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list spots by user: %w", err)
	}
	return spots, nil
}
