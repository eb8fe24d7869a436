package repository

import (
	"context"
	"time"

	"skitourspots/internal/model"
)

// The persistence gateway. Each operation translates to one relational
// statement or one join; constraint violations surface as the domain errors
// declared in internal/model, never as raw driver errors.

type UserRepository interface {
	// Create inserts a user. Unique violations map to
	// model.ErrDuplicateEmail / model.ErrDuplicateUsername.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type SpotRepository interface {
	List(ctx context.Context) ([]model.Spot, error)
	GetByID(ctx context.Context, id int64) (*model.Spot, error)
	// Create persists the spot and fills in the generated id and timestamp.
	Create(ctx context.Context, spot *model.Spot) error
	ListByUser(ctx context.Context, userID int64) ([]model.Spot, error)
}

type ReportRepository interface {
	ListBySpot(ctx context.Context, spotID int64) ([]model.TripReport, error)
	// Create persists the report. A foreign-key violation on spot_id maps
	// to model.ErrSpotNotFound.
	Create(ctx context.Context, report *model.TripReport) error
	ListByUser(ctx context.Context, userID int64) ([]model.TripReport, error)
}

type FavoriteRepository interface {
	// Add inserts the pair. Returns false when the pair already existed;
	// the uniqueness constraint arbitrates concurrent calls.
	Add(ctx context.Context, userID, spotID int64) (bool, error)
	// Remove deletes the pair; removing an absent pair is a no-op.
	Remove(ctx context.Context, userID, spotID int64) error
	// ListSpotsByUser resolves a user's favorited spots via the join table.
	ListSpotsByUser(ctx context.Context, userID int64) ([]model.Spot, error)
}

type FollowRepository interface {
	// Create inserts the pair. Returns false when already following.
	Create(ctx context.Context, followerID, followedID int64) (bool, error)
	// Delete removes the pair; absent pairs are a no-op.
	Delete(ctx context.Context, followerID, followedID int64) error
	ListFollowing(ctx context.Context, userID int64) ([]model.PublicUser, error)
	ListFollowers(ctx context.Context, userID int64) ([]model.PublicUser, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// FindByTokenHash returns model.ErrSessionNotFound for unknown or
	// expired tokens.
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error)
	// Delete removes a session, reporting whether a row existed.
	Delete(ctx context.Context, tokenHash string) (bool, error)
	// DeleteExpired sweeps sessions whose absolute lifetime passed before
	// the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store bundles the gateway interfaces so transport setup can switch between
// the Postgres and in-memory implementations at startup.
type Store struct {
	Users     UserRepository
	Spots     SpotRepository
	Reports   ReportRepository
	Favorites FavoriteRepository
	Follows   FollowRepository
	Sessions  SessionRepository
}
