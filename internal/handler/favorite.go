package handler

import (
	"errors"
	"net/http"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// FavoriteHandler manages the authenticated user's saved spots.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add favorites a spot for the authenticated user.
// POST /api/spots/{spotID}/favorite
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	spotID, err := parseIDParam(r, "spotID")
	if err != nil {
		httputil.WriteNotFound(w, "Spot not found")
		return
	}

	if err := h.favoriteService.Add(r.Context(), userID, spotID); err != nil {
		switch {
		case errors.Is(err, model.ErrSpotNotFound):
			httputil.WriteNotFound(w, "Spot not found")
		case errors.Is(err, model.ErrAlreadyFavorited):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeAlreadyFavorited, "Spot already favorited")
		default:
			httputil.WriteInternalError(w, "Failed to add favorite")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Remove unfavorites a spot. Removing an absent favorite still succeeds.
// DELETE /api/spots/{spotID}/favorite
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	spotID, err := parseIDParam(r, "spotID")
	if err != nil {
		httputil.WriteNotFound(w, "Spot not found")
		return
	}

	if err := h.favoriteService.Remove(r.Context(), userID, spotID); err != nil {
		httputil.WriteInternalError(w, "Failed to remove favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
