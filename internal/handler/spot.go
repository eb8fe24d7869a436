package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// SpotHandler serves the public spot catalog and authenticated spot creation.
type SpotHandler struct {
	spotService *service.SpotService
}

func NewSpotHandler(spotService *service.SpotService) *SpotHandler {
	return &SpotHandler{spotService: spotService}
}

// List returns all spots, newest first.
// GET /api/spots
func (h *SpotHandler) List(w http.ResponseWriter, r *http.Request) {
	spots, err := h.spotService.List(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list spots")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, spots)
}

// Get returns one spot by id.
// GET /api/spots/{spotID}
func (h *SpotHandler) Get(w http.ResponseWriter, r *http.Request) {
	spotID, err := parseIDParam(r, "spotID")
	if err != nil {
		httputil.WriteNotFound(w, "Spot not found")
		return
	}

	spot, err := h.spotService.GetByID(r.Context(), spotID)
	if err != nil {
		if errors.Is(err, model.ErrSpotNotFound) {
			httputil.WriteNotFound(w, "Spot not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get spot")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, spot)
}

// Create adds a spot owned by the authenticated user.
// POST /api/spots
func (h *SpotHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	var req model.CreateSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	spot, err := h.spotService.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, "Failed to create spot")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, spot)
}

// parseIDParam reads a positive integer URL parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
