package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) favoritesHandler(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.fav.Hotels(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, hotelsResponse{Hotels: hotels, Count: len(hotels)})
}

func (s *Server) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.fav.Add(r.Context(), chi.URLParam(r, "hotelID")); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.fav.Remove(r.Context(), chi.URLParam(r, "hotelID")); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
