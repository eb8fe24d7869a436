package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// ReportHandler serves trip reports nested under a spot.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ListBySpot returns a spot's trip reports, newest first.
// GET /api/spots/{spotID}/reports
func (h *ReportHandler) ListBySpot(w http.ResponseWriter, r *http.Request) {
	spotID, err := parseIDParam(r, "spotID")
	if err != nil {
		httputil.WriteNotFound(w, "Spot not found")
		return
	}

	reports, err := h.reportService.ListBySpot(r.Context(), spotID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list reports")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reports)
}

// Create adds a trip report for a spot, authored by the authenticated user.
// POST /api/spots/{spotID}/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req model.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	report, err := h.reportService.Create(r.Context(), spotID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrSpotNotFound):
			httputil.WriteNotFound(w, "Spot not found")
		default:
			httputil.WriteInternalError(w, "Failed to create report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, report)
}
