package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"skitourspots/internal/config"
	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
	"skitourspots/internal/service"
	"skitourspots/internal/transport/http/middleware"
)

// AuthHandler groups registration, login, logout and the current-user probe.
type AuthHandler struct {
	authService *service.AuthService
	config      *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
	}
}

// Register handles account creation and logs the new user in.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCaptchaInvalid):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeCaptchaInvalid, "Captcha verification failed")
		case errors.Is(err, model.ErrValidation):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrDuplicateEmail):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeDuplicateEmail, "Email already registered")
		case errors.Is(err, model.ErrDuplicateUsername):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeDuplicateUsername, "Username already taken")
		default:
			httputil.WriteInternalError(w, "Failed to register")
		}
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		httputil.WriteInternalError(w, "Failed to create session")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login authenticates by email and password and issues a session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCaptchaInvalid):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeCaptchaInvalid, "Captcha verification failed")
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeInvalidCreds, "Invalid email or password")
		default:
			httputil.WriteInternalError(w, "Failed to login")
		}
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		httputil.WriteInternalError(w, "Failed to create session")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Logout destroys the session named by the cookie and clears it. Logging out
// without a session still succeeds.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var rawToken string
	if cookie, err := r.Cookie(model.SessionCookieName); err == nil {
		rawToken = cookie.Value
	}

	if err := h.authService.DestroySession(r.Context(), rawToken); err != nil {
		httputil.WriteInternalError(w, "Failed to logout")
		return
	}

	h.clearSessionCookie(w)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me returns the currently authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Not authenticated")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// startSession issues a session token and sets it as an httpOnly cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	rawToken, expiresAt, err := h.authService.CreateSession(r.Context(), userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     model.SessionCookieName,
		Value:    rawToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     model.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
