package model

import (
	"errors"
	"time"
)

// FavoriteSpot links a user to a spot they bookmarked. The (user, spot)
// pair is unique; duplicates are arbitrated by the storage constraint.
type FavoriteSpot struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	SpotID    int64     `db:"spot_id" json:"spot_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

var (
	// ErrAlreadyFavorited is returned when the pair already exists
	ErrAlreadyFavorited = errors.New("spot already favorited")
)
