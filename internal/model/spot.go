package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Difficulty grades for a touring spot.
const (
	DifficultyEasy         = "easy"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyExpert       = "expert"
)

// Best-season values for a touring spot.
const (
	SeasonWinter = "winter"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonFall   = "fall"
)

var difficulties = map[string]struct{}{
	DifficultyEasy:         {},
	DifficultyIntermediate: {},
	DifficultyAdvanced:     {},
	DifficultyExpert:       {},
}

var seasons = map[string]struct{}{
	SeasonWinter: {},
	SeasonSpring: {},
	SeasonSummer: {},
	SeasonFall:   {},
}

// ValidDifficulty reports whether d is a known difficulty grade.
func ValidDifficulty(d string) bool {
	_, ok := difficulties[d]
	return ok
}

// ValidSeason reports whether s is a known season.
func ValidSeason(s string) bool {
	_, ok := seasons[s]
	return ok
}

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64 `db:"lat" json:"lat"`
	Lng float64 `db:"lng" json:"lng"`
}

// Valid reports whether the coordinates are on the globe.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Spot is a cataloged ski-touring location. Spots are immutable once
// created; there are no edit or delete endpoints.
type Spot struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Difficulty  string         `db:"difficulty" json:"difficulty"`
	Elevation   int            `db:"elevation" json:"elevation"`
	Location    Location       `db:"location" json:"location"`
	Access      string         `db:"access" json:"access"`
	BestSeason  string         `db:"best_season" json:"best_season"`
	Images      pq.StringArray `db:"images" json:"images"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// CreateSpotRequest is the body for POST /api/spots. The owning user id is
// injected from the session, never taken from the client.
type CreateSpotRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Elevation   int      `json:"elevation"`
	Location    Location `json:"location"`
	Access      string   `json:"access"`
	BestSeason  string   `json:"best_season"`
	Images      []string `json:"images"`
}

var (
	// ErrSpotNotFound is returned when a spot id does not resolve
	ErrSpotNotFound = errors.New("spot not found")
)
