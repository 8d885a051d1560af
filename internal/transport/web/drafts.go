package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avstrong/lodgix/internal/booking"
)

type openDraftRequest struct {
	HotelID string `json:"hotelId"`
}

type roomQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type finalizeRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func draftID(r *http.Request) string {
	return chi.URLParam(r, "draftID")
}

func (s *Server) openDraftHandler(w http.ResponseWriter, r *http.Request) {
	var req openDraftRequest

	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	if req.HotelID == "" {
		s.writeError(w, fmt.Errorf("%w: hotelId is required", ErrBadRequestBody))

		return
	}

	view, err := s.bManager.OpenDraft(r.Context(), req.HotelID)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) draftHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.bManager.Draft(r.Context(), draftID(r))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) updateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	var patch booking.DetailsPatch

	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)

		return
	}

	view, err := s.bManager.UpdateDetails(r.Context(), draftID(r), patch)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) setRoomQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req roomQuantityRequest

	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	if req.Quantity == nil {
		s.writeError(w, fmt.Errorf("%w: quantity is required", ErrBadRequestBody))

		return
	}

	view, err := s.bManager.SetRoomQuantity(r.Context(), draftID(r), chi.URLParam(r, "roomTypeID"), *req.Quantity)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) submitDetailsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.bManager.SubmitDetails(r.Context(), draftID(r))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) backHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.bManager.BackToDetails(r.Context(), draftID(r))
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) abandonDraftHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.bManager.AbandonDraft(r.Context(), draftID(r)); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// finalizeInput reads the payment step. Multipart forms may carry the bank
// transfer receipt as the "receipt" file; JSON bodies carry the method only.
func (s *Server) finalizeInput(w http.ResponseWriter, r *http.Request) (booking.FinalizeInput, error) {
	var input booking.FinalizeInput

	if s.conf.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.conf.MaxUploadBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		var req finalizeRequest
		if err := decodeJSON(r, &req); err != nil {
			return input, err
		}

		input.PaymentMethod = booking.PaymentMethod(req.PaymentMethod)

		return input, nil
	}

	if err := r.ParseMultipartForm(s.conf.MaxUploadBytes); err != nil {
		return input, errors.Join(ErrBadRequestBody, err)
	}

	input.PaymentMethod = booking.PaymentMethod(r.FormValue("paymentMethod"))

	file, header, err := r.FormFile("receipt")

	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return input, errors.Join(ErrBadRequestBody, err)
	default:
		defer file.Close()

		input.Receipt = &booking.Attachment{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
		}
	}

	return input, nil
}

func (s *Server) finalizeHandler(w http.ResponseWriter, r *http.Request) {
	input, err := s.finalizeInput(w, r)
	if err != nil {
		s.writeError(w, err)

		return
	}

	b, err := s.bManager.Finalize(r.Context(), draftID(r), input)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, b)
}
