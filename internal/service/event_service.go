package service

import (
	"context"
	"strings"

	"github.com/pranavkale/eventslots/internal/clock"
	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
)

// EventStore persists events and serves the aggregate read views.
type EventStore interface {
	CreateWithSlots(ctx context.Context, event *model.Event, specs []model.SlotSpec) ([]model.Slot, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListPublic(ctx context.Context) ([]model.EventSummary, error)
	GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error)
}

// SlotDeactivator marks slots inactive.
type SlotDeactivator interface {
	Deactivate(ctx context.Context, slotID, eventID string) error
}

// EventService orchestrates event creation and the read side.
type EventService struct {
	events EventStore
	slots  SlotDeactivator
	clock  clock.Clock
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, slots SlotDeactivator, clk clock.Clock) *EventService {
	return &EventService{events: events, slots: slots, clock: clk}
}

const (
	maxSlotsPerEvent   = 20
	maxBookingsPerSlot = 50
)

// CreateEvent validates the request and inserts the event with all of its
// slots atomically; an event without its slots can never be observed.
func (s *EventService) CreateEvent(ctx context.Context, userID string, req model.CreateEventRequest) (*model.Event, []model.Slot, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if len(req.Title) < 3 || len(req.Title) > 100 {
		return nil, nil, invalid("title must be between 3 and 100 characters")
	}
	if len(req.Description) < 10 || len(req.Description) > 500 {
		return nil, nil, invalid("description must be between 10 and 500 characters")
	}
	if len(req.Slots) == 0 {
		return nil, nil, invalid("at least one slot is required")
	}
	if len(req.Slots) > maxSlotsPerEvent {
		return nil, nil, invalid("cannot create more than %d slots per event", maxSlotsPerEvent)
	}

	now := s.clock.Now()
	for i, spec := range req.Slots {
		if spec.MaxBookings < 1 || spec.MaxBookings > maxBookingsPerSlot {
			return nil, nil, invalid("slot %d: max_bookings must be between 1 and %d", i+1, maxBookingsPerSlot)
		}
		if !spec.EndTime.After(spec.StartTime) {
			return nil, nil, invalid("slot %d: end time must be after start time", i+1)
		}
		if !spec.StartTime.After(now) {
			return nil, nil, invalid("slot %d: start time must be in the future", i+1)
		}
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		UserID:      userID,
	}
	slots, err := s.events.CreateWithSlots(ctx, event, req.Slots)
	if err != nil {
		return nil, nil, err
	}
	return event, slots, nil
}

// ListPublic returns all public events with their availability totals.
func (s *EventService) ListPublic(ctx context.Context) ([]model.EventSummary, error) {
	return s.events.ListPublic(ctx)
}

// GetDetails returns an event with its ordered slot list. Private events are
// reachable by direct identifier.
func (s *EventService) GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error) {
	if eventID == "" {
		return nil, invalid("event id is required")
	}
	return s.events.GetDetails(ctx, eventID)
}

// DeactivateSlot marks a slot inactive. Only the event owner may do this.
func (s *EventService) DeactivateSlot(ctx context.Context, userID, eventID, slotID string) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return repository.ErrNotOwner
	}
	return s.slots.Deactivate(ctx, slotID, event.ID)
}
