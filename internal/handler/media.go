package handler

import (
	"errors"
	"net/http"
	"strings"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// MediaHandler accepts image uploads for spots and trip reports.
type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload handles POST /api/media/images. The client uploads the image first
// and references the returned URL in a subsequent spot or report creation.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Authentication required")
		return
	}

	maxFormSize := int64(model.MaxImageSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadImage(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			httputil.WriteInternalError(w, "Failed to upload image")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, upload)
}
