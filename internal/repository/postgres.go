package repository

import (
	"github.com/jmoiron/sqlx"
)

// NewPostgresStore wires the sqlx-backed gateway implementations.
func NewPostgresStore(db *sqlx.DB) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		Spots:     NewSpotRepository(db),
		Reports:   NewReportRepository(db),
		Favorites: NewFavoriteRepository(db),
		Follows:   NewFollowRepository(db),
		Sessions:  NewSessionRepository(db),
	}
}
