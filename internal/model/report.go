package model

import (
	"time"

	"github.com/lib/pq"
)

// TripReport is a dated account of visiting a spot, optionally carrying a
// raw GPX track. The track is stored verbatim; parsing happens client-side.
type TripReport struct {
	ID          int64          `db:"id" json:"id"`
	SpotID      int64          `db:"spot_id" json:"spot_id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Date        time.Time      `db:"date" json:"date"`
	Conditions  string         `db:"conditions" json:"conditions"`
	Images      pq.StringArray `db:"images" json:"images"`
	GPXTrack    *string        `db:"gpx_track" json:"gpx_track"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// CreateReportRequest is the body for POST /api/spots/{id}/reports. The spot
// id comes from the URL path and the author from the session.
type CreateReportRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // RFC 3339
	Conditions  string   `json:"conditions"`
	Images      []string `json:"images"`
	GPXTrack    *string  `json:"gpx_track"`
}
