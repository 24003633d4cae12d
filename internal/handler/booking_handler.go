package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pranavkale/eventslots/internal/model"
)

// BookingService is the slice of the service layer the booking handlers need.
type BookingService interface {
	Reserve(ctx context.Context, eventID string, req model.ReserveRequest) (*model.ReserveResult, error)
	Cancel(ctx context.Context, bookingID string, req model.CancelBookingRequest) error
	ListByEmail(ctx context.Context, email string) ([]model.BookingView, error)
}

// BookingHandler holds the HTTP handlers for bookings.
type BookingHandler struct {
	svc    BookingService
	logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// Reserve handles POST /v1/events/{id}/bookings
// Performs the concurrency-safe slot reservation.
func (h *BookingHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req model.ReserveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Reserve(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.logError("reserve", err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Cancel handles POST /v1/bookings/{id}/cancel
// Flips the booking to CANCELLED; the slot counter is not freed.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req model.CancelBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		h.logError("cancel booking", err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// ListByEmail handles GET /v1/events/bookings?email=...
func (h *BookingHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.logError("list bookings", err)
		respondError(w, err)
		return
	}

	if bookings == nil {
		bookings = []model.BookingView{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) logError(op string, err error) {
	if h.logger != nil {
		h.logger.Warn(op+" failed", zap.Error(err))
	}
}
