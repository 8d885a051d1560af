package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/catalog"
)

type hotelsResponse struct {
	Hotels []*booking.Hotel `json:"hotels"`
	Count  int              `json:"count"`
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()

	sort, err := catalog.ParseSort(q.Get("sort"))
	if err != nil {
		return catalog.Filter{}, err //nolint:exhaustruct
	}

	filter := catalog.Filter{
		Query: q.Get("q"),
		Type:  q.Get("type"),
		Sort:  sort,
	}

	for name, dst := range map[string]*float64{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return catalog.Filter{}, fmt.Errorf("%w: %s=%q", ErrBadParam, name, raw) //nolint:exhaustruct
		}

		*dst = v
	}

	for _, raw := range q["amenities"] {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.Amenities = append(filter.Amenities, a)
			}
		}
	}

	return filter, nil
}

func (s *Server) searchHotelsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	hotels, err := s.hotels.Search(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, hotelsResponse{Hotels: hotels, Count: len(hotels)})
}

func (s *Server) hotelHandler(w http.ResponseWriter, r *http.Request) {
	hotel, err := s.hotels.Hotel(r.Context(), chi.URLParam(r, "hotelID"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, hotel)
}
