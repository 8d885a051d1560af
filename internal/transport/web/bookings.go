package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/receipt"
)

type historyResponse struct {
	Bookings []*booking.FinalizedBooking `json:"bookings"`
	Summary  booking.HistorySummary      `json:"summary"`
	// Favorites is the number of hotels the guest marked.
	Favorites int `json:"favorites"`
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	bookings, err := s.bManager.History(r.Context(), booking.HistoryFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Date:   q.Get("date"),
	})
	if err != nil {
		s.writeError(w, err)

		return
	}

	favorites, err := s.fav.Count(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, historyResponse{
		Bookings:  bookings,
		Summary:   booking.Summarize(bookings),
		Favorites: favorites,
	})
}

func (s *Server) bookingHandler(w http.ResponseWriter, r *http.Request) {
	b, err := s.bManager.Booking(r.Context(), chi.URLParam(r, "receiptID"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) receiptHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = receipt.FormatText
	}

	if format != receipt.FormatText && format != receipt.FormatPDF {
		s.writeError(w, fmt.Errorf("%w: format=%q", ErrBadParam, format))

		return
	}

	b, err := s.bManager.Booking(r.Context(), chi.URLParam(r, "receiptID"))
	if err != nil {
		s.writeError(w, err)

		return
	}

	var (
		body        []byte
		contentType string
	)

	switch format {
	case receipt.FormatPDF:
		var buf bytes.Buffer
		if err := receipt.PDF(&buf, b); err != nil {
			s.writeError(w, err)

			return
		}

		body, contentType = buf.Bytes(), "application/pdf"
	default:
		body, contentType = []byte(receipt.Text(b)), "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.FileName(b, format)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		s.l.LogErrorf("Could not write receipt %s: %v", b.ReceiptID, err.Error())
	}
}
