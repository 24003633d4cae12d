// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
	"github.com/pranavkale/eventslots/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondError maps domain errors to transport-level status codes. Unknown
// errors are not interpreted; they surface as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrSlotNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrSlotFull),
		errors.Is(err, repository.ErrSlotInactive),
		errors.Is(err, repository.ErrDuplicateBooking),
		errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrTxConflict):
		// Eligible for one caller-side retry; never retried here.
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
