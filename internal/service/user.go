package service

import (
	"context"

	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// UserService serves public profile data. Every lookup is keyed by username
// and returns model.ErrUserNotFound when the username is unknown.
type UserService struct {
	users     repository.UserRepository
	spots     repository.SpotRepository
	reports   repository.ReportRepository
	favorites repository.FavoriteRepository
	follows   repository.FollowRepository
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{
		users:     store.Users,
		spots:     store.Spots,
		reports:   store.Reports,
		favorites: store.Favorites,
		follows:   store.Follows,
	}
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.PublicUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *UserService) ListSpots(ctx context.Context, username string) ([]model.Spot, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.spots.ListByUser(ctx, user.ID)
}

func (s *UserService) ListReports(ctx context.Context, username string) ([]model.TripReport, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.reports.ListByUser(ctx, user.ID)
}

func (s *UserService) ListFavorites(ctx context.Context, username string) ([]model.Spot, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListSpotsByUser(ctx, user.ID)
}

func (s *UserService) ListFollowing(ctx context.Context, username string) ([]model.PublicUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.follows.ListFollowing(ctx, user.ID)
}

func (s *UserService) ListFollowers(ctx context.Context, username string) ([]model.PublicUser, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.follows.ListFollowers(ctx, user.ID)
}
