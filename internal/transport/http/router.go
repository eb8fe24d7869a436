package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skitourspots/internal/handler"
	"skitourspots/internal/httputil"
	authmw "skitourspots/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes.
// MediaHandler may be nil when object storage is not configured; the upload
// route is simply not mounted then.
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	SpotHandler     *handler.SpotHandler
	ReportHandler   *handler.ReportHandler
	UserHandler     *handler.UserHandler
	FavoriteHandler *handler.FavoriteHandler
	FollowHandler   *handler.FollowHandler
	MediaHandler    *handler.MediaHandler
	Authenticator   authmw.SessionAuthenticator
}

// NewRouter creates and configures a Chi router with all route groups.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes, no authentication required
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)

		r.Get("/spots", cfg.SpotHandler.List)
		r.Get("/spots/{spotID}", cfg.SpotHandler.Get)
		r.Get("/spots/{spotID}/reports", cfg.ReportHandler.ListBySpot)

		r.Get("/users/{username}", cfg.UserHandler.Get)
		r.Get("/users/{username}/spots", cfg.UserHandler.ListSpots)
		r.Get("/users/{username}/reports", cfg.UserHandler.ListReports)
		r.Get("/users/{username}/favorites", cfg.UserHandler.ListFavorites)
		r.Get("/users/{username}/following", cfg.UserHandler.ListFollowing)
		r.Get("/users/{username}/followers", cfg.UserHandler.ListFollowers)

		// Protected routes, require a valid session cookie
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(cfg.Authenticator))

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Post("/spots", cfg.SpotHandler.Create)
			r.Post("/spots/{spotID}/reports", cfg.ReportHandler.Create)

			r.Post("/spots/{spotID}/favorite", cfg.FavoriteHandler.Add)
			r.Delete("/spots/{spotID}/favorite", cfg.FavoriteHandler.Remove)

			r.Post("/users/{username}/follow", cfg.FollowHandler.Follow)
			r.Delete("/users/{username}/follow", cfg.FollowHandler.Unfollow)

			if cfg.MediaHandler != nil {
				r.Post("/media/images", cfg.MediaHandler.Upload)
			}
		})
	})

	return r
}
