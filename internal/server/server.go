package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/lealre/reelstate/internal/api"
	"github.com/lealre/reelstate/internal/config"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the HTTP handler with every route of the service.
func NewServer(db *mongodb.DB, cfg config.Config) http.Handler {
	apiCfg := api.NewAPI(db, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	sessions := newSessionCache(cfg.Auth.SessionCacheTTL)

	r := chi.NewRouter()
	r.Use(RequestIdMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIdHeader},
		ExposedHeaders: []string{requestIdHeader},
		MaxAge:         86400,
	}))
	if cfg.Security.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow))
	}

	r.Get("/healthz", apiCfg.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Auth.Secret, db, sessions))

		// Public, with the session used only to mark the caller's own reactions.
		r.Post("/auth/signup", apiCfg.Signup)
		r.Post("/auth/login", apiCfg.LoginHandler)
		r.Get("/reviews/{mediaType}/{mediaId}", apiCfg.GetTitleReviews)
		r.Get("/comments", apiCfg.GetTitleComments)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Post("/continue", apiCfg.SaveProgress)
			r.Get("/continue", apiCfg.ListContinueWatching)
			r.Delete("/continue/{mediaType}/{mediaId}", apiCfg.DeleteProgress)

			r.Get("/watchlist", apiCfg.GetWatchlist)
			r.Post("/watchlist", apiCfg.UpsertWatchlist)
			r.Delete("/watchlist/{id}", apiCfg.RemoveFromWatchlist)

			r.Post("/reviews", apiCfg.AddReview)
			r.Delete("/reviews/{id}", apiCfg.DeleteReview)
			r.Put("/reviews/{id}/like", apiCfg.LikeReview)
			r.Put("/reviews/{id}/dislike", apiCfg.DislikeReview)
			r.Post("/reviews/{id}/report", apiCfg.ReportReview)

			r.Post("/comments", apiCfg.AddComment)
			r.Delete("/comments/{id}", apiCfg.DeleteComment)
			r.Post("/comments/{id}/react", apiCfg.ReactToComment)
			r.Post("/comments/{id}/report", apiCfg.ReportComment)

			r.Put("/users/profile", apiCfg.UpdateProfile)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/comments/reported", apiCfg.GetReportedComments)
				r.Patch("/comments/{id}/hide", apiCfg.HideComment)
				r.Get("/reviews/reported", apiCfg.GetReportedReviews)
				r.Patch("/reviews/{id}/hide", apiCfg.HideReview)
				r.Get("/users", apiCfg.GetUsers)
				r.Put("/users/{id}/ban", apiCfg.ToggleUserBan)
			})
		})
	})

	return r
}
