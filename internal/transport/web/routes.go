package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r chi.Router) {
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware())
	r.Use(s.recoverMiddleware())
	r.Use(s.corsMiddleware())

	r.Get(s.conf.LivenessEndpoint, s.livenessHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimitMiddleware())

		r.Route("/api/hotels/v1", func(r chi.Router) {
			r.Get("/", s.searchHotelsHandler)
			r.Get("/{hotelID}", s.hotelHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.guestMiddleware())

			r.Route("/api/drafts/v1", func(r chi.Router) {
				r.Post("/", s.openDraftHandler)
				r.Get("/{draftID}", s.draftHandler)
				r.Patch("/{draftID}", s.updateDetailsHandler)
				r.Delete("/{draftID}", s.abandonDraftHandler)
				r.Put("/{draftID}/rooms/{roomTypeID}", s.setRoomQuantityHandler)
				r.Post("/{draftID}/submit", s.submitDetailsHandler)
				r.Post("/{draftID}/back", s.backHandler)
				r.Post("/{draftID}/finalize", s.finalizeHandler)
			})

			r.Route("/api/bookings/v1", func(r chi.Router) {
				r.Get("/", s.historyHandler)
				r.Get("/{receiptID}", s.bookingHandler)
				r.Get("/{receiptID}/receipt", s.receiptHandler)
			})

			r.Route("/api/favorites/v1", func(r chi.Router) {
				r.Get("/", s.favoritesHandler)
				r.Put("/{hotelID}", s.addFavoriteHandler)
				r.Delete("/{hotelID}", s.removeFavoriteHandler)
			})
		})
	})
}
