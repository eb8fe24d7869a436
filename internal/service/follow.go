package service

import (
	"context"

	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// FollowService manages follow relationships between users. Targets are
// addressed by username in the API, so both operations resolve the username
// first.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) error {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return model.ErrCannotFollowSelf
	}

	inserted, err := s.follows.Create(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyFollowing
	}
	return nil
}

// Unfollow removes the relationship. Unfollowing a user who was never
// followed succeeds silently.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) error {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.follows.Delete(ctx, followerID, target.ID)
}
