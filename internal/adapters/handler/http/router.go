package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type Handlers struct {
	Votes     *VoteHandler
	Topics    *TopicHandler
	Stats     *StatsHandler
	Users     *UserHandler
	Auth      *AuthHandler
	WebSocket http.Handler
}

type RouterConfig struct {
	Identity    ports.IdentityResolver
	CORSOrigins []string
	Metrics     http.Handler
}

func NewHandler(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", deviceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	metricsHandler := cfg.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	if h.WebSocket != nil {
		r.Handle("/ws", h.WebSocket)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/otp/request", h.Auth.RequestCode)
		r.Post("/otp/verify", h.Auth.VerifyCode)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(cfg.Identity))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", h.Votes.Vote)
			r.With(RequireUser).Post("/claim", h.Votes.Claim)
		})

		r.Route("/topics", func(r chi.Router) {
			r.Get("/current", h.Topics.GetCurrent)
			r.Get("/{id}/results", h.Topics.GetResults)
			r.Get("/{id}/eligibility", h.Topics.GetEligibility)
		})

		r.Get("/voters/stats", h.Stats.GetVoterStats)

		r.Route("/users/me", func(r chi.Router) {
			r.Use(RequireUser)
			r.Get("/", h.Users.GetMe)
			r.Get("/stats", h.Stats.GetMyStats)
			r.Patch("/nickname", h.Users.UpdateNickname)
			r.Post("/region", h.Users.VerifyRegion)
		})
	})

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
