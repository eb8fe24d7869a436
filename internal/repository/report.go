package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"skitourspots/internal/model"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `
	id, spot_id, user_id, title, description, date, conditions, images, gpx_track, created_at
`

func (r *reportRepository) ListBySpot(ctx context.Context, spotID int64) ([]model.TripReport, error) {
	query := `SELECT ` + reportColumns + ` FROM trip_reports WHERE spot_id = $1 ORDER BY date DESC, id DESC`

	reports := []model.TripReport{}
	if err := r.db.SelectContext(ctx, &reports, query, spotID); err != nil {
		return nil, fmt.Errorf("failed to list reports by spot: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) Create(ctx context.Context, report *model.TripReport) error {
	query := `
		INSERT INTO trip_reports (spot_id, user_id, title, description, date, conditions, images, gpx_track, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	if report.Images == nil {
		report.Images = pq.StringArray{}
	}
	err := r.db.QueryRowxContext(ctx, query,
		report.SpotID,
		report.UserID,
		report.Title,
		report.Description,
		report.Date,
		report.Conditions,
		report.Images,
		report.GPXTrack,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		// The gateway does not pre-check spot existence; the foreign key
		// arbitrates and is translated here.
		if foreignKeyViolation(err) {
			return model.ErrSpotNotFound
		}
		return fmt.Errorf("failed to insert trip report: %w", err)
	}
	return nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID int64) ([]model.TripReport, error) {
	query := `SELECT ` + reportColumns + ` FROM trip_reports WHERE user_id = $1 ORDER BY date DESC, id DESC`

	reports := []model.TripReport{}
	if err := r.db.SelectContext(ctx, &reports, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reports by user: %w", err)
	}
	return reports, nil
}
