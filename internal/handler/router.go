/*
Package handler provides the HTTP handlers and routing of the stub events backend.

The stub serves the events API from memory. It is the local development target of
the client and the fixture of its integration tests. This file defines the Router,
which applies CORS, request ids, logging, panic recovery and login rate limiting
before delegating to the handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"eventify/internal/pkg/auth/jwt"
	"eventify/internal/pkg/limiter"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/resp"
)

const (
	LoginRate  = 1
	LoginBurst = 10
)

// Router builds the routing table of the stub backend.
// The returned stop function releases the rate limiter.
func Router(deps *AppDeps) (http.Handler, func()) {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "eventify stub",
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(deps.Tokens.Identify)

		api.Route("/user", func(u chi.Router) {
			u.Use(loginLimiter.Middleware)
			u.Post("/login", HandleLogin(deps))
			u.Post("/register", HandleRegister(deps))
		})

		api.Group(func(protected chi.Router) {
			protected.Use(jwt.Require)

			protected.Get("/event/all", HandleListEvents(deps))
			protected.Get("/event/{id}", HandleGetEvent(deps))
			protected.Post("/event/create", HandleCreateEvent(deps))
			protected.Post("/event/update", HandleUpdateEvent(deps))

			protected.Post("/attendance/create", HandleConfirmAttendance(deps))
			protected.Post("/comments/create", HandleAddComment(deps))
			protected.Post("/ratings/create", HandleSubmitRating(deps))
		})
	})

	return r, loginLimiter.Stop
}
