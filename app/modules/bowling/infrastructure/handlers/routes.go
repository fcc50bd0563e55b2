package bowlinghandlers

import (
	"github.com/Black-And-White-Club/tenpin/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RouteConfig holds the middleware settings for the games API.
type RouteConfig struct {
	AllowedOrigins []string
	Limiter        *IPRateLimiter
}

// Routes returns the /api/games route tree. Writes are rate limited per
// client address, and all but create require a player token for the game.
func Routes(h Handlers, tokens jwt.Service, cfg RouteConfig) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))

		r.Group(func(r chi.Router) {
			useLimiter(r, cfg.Limiter)
			r.Post("/", h.HandleCreateGame)
		})

		r.Route("/{gameID}", func(r chi.Router) {
			// Public routes
			r.Get("/", h.HandleGetGame)
			r.Get("/scorecard.xlsx", h.HandleScorecard)
			r.Get("/chart.png", h.HandleChart)

			// Protected routes
			r.Group(func(r chi.Router) {
				useLimiter(r, cfg.Limiter)
				r.Use(GameAuthMiddleware(tokens))
				r.Post("/rolls", h.HandleRoll)
				r.Post("/restart", h.HandleRestartGame)
				r.Delete("/", h.HandleDeleteGame)
			})
		})
	}
}

func useLimiter(r chi.Router, limiter *IPRateLimiter) {
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}
}
