package middleware

import (
	"context"
	"net/http"

	"skitourspots/internal/httputil"
	"skitourspots/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// SessionAuthenticator resolves a raw session cookie value to a user id.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, rawToken string) (int64, error)
}

// RequireAuth rejects requests without a valid session cookie before the
// handler runs, so protected endpoints never touch the request body
// unauthenticated. The resolved user id is stored in the request context.
func RequireAuth(auth SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(model.SessionCookieName)
			if err != nil || cookie.Value == "" {
				httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Authentication required")
				return
			}

			userID, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				httputil.WriteUnauthorizedWithCode(w, httputil.ErrCodeUnauthenticated, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
