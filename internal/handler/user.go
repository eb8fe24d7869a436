package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
)

// UserHandler serves public profile pages keyed by username.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get returns a user's public profile.
// GET /api/users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// ListSpots returns the spots a user has contributed.
// GET /api/users/{username}/spots
func (h *UserHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	spots, err := h.userService.ListSpots(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to list spots")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, spots)
}

// ListReports returns the trip reports a user has written.
// GET /api/users/{username}/reports
func (h *UserHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	reports, err := h.userService.ListReports(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to list reports")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reports)
}

// ListFavorites returns the spots a user has favorited.
// GET /api/users/{username}/favorites
func (h *UserHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	spots, err := h.userService.ListFavorites(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to list favorites")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, spots)
}

// ListFollowing returns the users this user follows.
// GET /api/users/{username}/following
func (h *UserHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	users, err := h.userService.ListFollowing(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to list following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// ListFollowers returns the users following this user.
// GET /api/users/{username}/followers
func (h *UserHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	users, err := h.userService.ListFollowers(r.Context(), username)
	if err != nil {
		h.writeUserError(w, err, "Failed to list followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, model.ErrUserNotFound) {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	httputil.WriteInternalError(w, fallback)
}
