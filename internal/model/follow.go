package model

import (
	"errors"
	"time"
)

// UserFollow links a follower to a followed user. The pair is unique,
// same constraint discipline as favorites.
type UserFollow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	FollowedID int64     `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
