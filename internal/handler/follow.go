package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// FollowHandler manages follow relationships for the authenticated user.
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow makes the authenticated user follow the named user.
// POST /api/users/{username}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	username := chi.URLParam(r, "username")

	if err := h.followService.Follow(r.Context(), userID, username); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "Cannot follow yourself")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeAlreadyFollowing, "Already following this user")
		default:
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Unfollow removes the relationship. Unfollowing someone never followed
// still succeeds.
// DELETE /api/users/{username}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	username := chi.URLParam(r, "username")

	if err := h.followService.Unfollow(r.Context(), userID, username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
