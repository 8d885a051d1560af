package web

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/avstrong/lodgix/internal/booking"
	"github.com/avstrong/lodgix/internal/catalog"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

// writeError maps domain errors to status codes. Unknown errors are logged
// and hidden behind a generic 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: inputErr.Fields()})

		return
	}

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, booking.ErrGuestRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, booking.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrDraftFrozen),
		errors.Is(err, booking.ErrDuplicateReceipt):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrNoRoomTypes):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequestBody), errors.Is(err, ErrBadParam), errors.Is(err, catalog.ErrUnknownSort):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.l.LogErrorf("Request failed: %v", err.Error())
		s.writeJSON(w, status, errorResponse{Error: http.StatusText(status)}) //nolint:exhaustruct

		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()}) //nolint:exhaustruct
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrBadRequestBody, err)
	}

	return nil
}
