package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pranavkale/eventslots/internal/auth"
)

// NewRouter assembles the full HTTP surface under /v1.
func NewRouter(
	events *EventHandler,
	bookings *BookingHandler,
	users *UserHandler,
	verifier auth.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(logger))
	r.Use(CORS)

	r.Get("/health", HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", users.Signup)
			r.Post("/signin", users.Signin)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/list", events.ListEvents)
			r.Get("/bookings", bookings.ListByEmail)
			r.Get("/{id}", events.GetEvent)
			r.Post("/{id}/bookings", bookings.Reserve)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(verifier))
				r.Post("/", events.CreateEvent)
				r.Post("/{id}/slots/{slotId}/deactivate", events.DeactivateSlot)
			})
		})

		r.Post("/bookings/{id}/cancel", bookings.Cancel)
	})

	return r
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
