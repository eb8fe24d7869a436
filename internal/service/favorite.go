package service

import (
	"context"

	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// FavoriteService manages a user's saved spots.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	spots     repository.SpotRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository, spots repository.SpotRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, spots: spots}
}

// Add favorites a spot for the user. Favoriting a spot that is already
// favorited is rejected rather than treated as a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, spotID int64) error {
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return err
	}

	inserted, err := s.favorites.Add(ctx, userID, spotID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyFavorited
	}
	return nil
}

// Remove unfavorites a spot. Removing an absent favorite succeeds silently.
func (s *FavoriteService) Remove(ctx context.Context, userID, spotID int64) error {
	return s.favorites.Remove(ctx, userID, spotID)
}
