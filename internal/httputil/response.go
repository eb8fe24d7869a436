package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes surfaced in error bodies. Constraint violations and captcha
// failures are 400s; credential problems are 401s.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeCaptchaInvalid    = "CAPTCHA_INVALID"
	ErrCodeDuplicateEmail    = "DUPLICATE_EMAIL"
	ErrCodeDuplicateUsername = "DUPLICATE_USERNAME"
	ErrCodeAlreadyFavorited  = "ALREADY_FAVORITED"
	ErrCodeAlreadyFollowing  = "ALREADY_FOLLOWING"
	ErrCodeInvalidCreds      = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing more we can do here.
			return
		}
	}
}

// WriteError writes an error response:
// {"error": {"code": "ERROR_CODE", "message": "Human readable message"}}
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// Common error response helpers

// WriteBadRequest writes a 400 with the generic validation code
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, ErrCodeValidation, message)
}

// WriteBadRequestWithCode writes a 400 with a specific error code
func WriteBadRequestWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusBadRequest, code, message)
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, ErrCodeUnauthenticated, message)
}

// WriteUnauthorizedWithCode writes a 401 with a specific error code
func WriteUnauthorizedWithCode(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusUnauthorized, code, message)
}

// WriteNotFound writes a 404 Not Found error
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}
