package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pranavkale/eventslots/internal/auth"
	"github.com/pranavkale/eventslots/internal/model"
)

// EventService is the slice of the service layer the event handlers need.
type EventService interface {
	CreateEvent(ctx context.Context, userID string, req model.CreateEventRequest) (*model.Event, []model.Slot, error)
	ListPublic(ctx context.Context) ([]model.EventSummary, error)
	GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error)
	DeactivateSlot(ctx context.Context, userID, eventID, slotID string) error
}

// EventHandler holds the HTTP handlers for events and slots.
type EventHandler struct {
	svc    EventService
	logger *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

type createEventResponse struct {
	model.Event
	Slots []model.Slot `json:"slots"`
}

// CreateEvent handles POST /v1/events (authenticated).
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	event, slots, err := h.svc.CreateEvent(r.Context(), userID, req)
	if err != nil {
		h.logError("create event", err)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createEventResponse{Event: *event, Slots: slots})
}

// ListEvents handles GET /v1/events/list
// Returns all public events annotated with slot availability.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListPublic(r.Context())
	if err != nil {
		h.logError("list events", err)
		respondError(w, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.EventSummary{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /v1/events/{id}
// Private events are reachable here by direct identifier.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.GetDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError("get event", err)
		respondError(w, err)
		return
	}

	if details.Slots == nil {
		details.Slots = []model.SlotView{}
	}
	writeJSON(w, http.StatusOK, details)
}

// DeactivateSlot handles POST /v1/events/{id}/slots/{slotId}/deactivate
// (authenticated, owner only).
func (h *EventHandler) DeactivateSlot(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	err := h.svc.DeactivateSlot(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "slotId"))
	if err != nil {
		h.logError("deactivate slot", err)
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) logError(op string, err error) {
	if h.logger != nil {
		h.logger.Warn(op+" failed", zap.Error(err))
	}
}
