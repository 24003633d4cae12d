package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
)

// fakeRepo is an in-memory stand-in for the event, slot and booking
// repositories. WithTx snapshots state and restores it when fn fails, so
// rollback semantics can be asserted without a database.
type fakeRepo struct {
	events   map[string]model.Event
	slots    map[string]model.Slot
	bookings map[string]model.Booking

	failSlotInsertAt int   // 1-based index of the slot insert to fail, 0 = never
	createBookingErr error // injected failure for booking inserts
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:   make(map[string]model.Event),
		slots:    make(map[string]model.Slot),
		bookings: make(map[string]model.Booking),
	}
}

func (f *fakeRepo) addEvent(e model.Event) {
	f.events[e.ID] = e
}

func (f *fakeRepo) addSlot(s model.Slot) {
	f.slots[s.ID] = s
}

func (f *fakeRepo) addBooking(b model.Booking) {
	f.bookings[b.ID] = b
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	events := cloneMap(f.events)
	slots := cloneMap(f.slots)
	bookings := cloneMap(f.bookings)

	if err := fn(ctx); err != nil {
		f.events = events
		f.slots = slots
		f.bookings = bookings
		return err
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return &e, nil
}

func (f *fakeRepo) CreateWithSlots(ctx context.Context, event *model.Event, specs []model.SlotSpec) ([]model.Slot, error) {
	var slots []model.Slot
	err := f.WithTx(ctx, func(ctx context.Context) error {
		event.ID = uuid.New().String()
		f.events[event.ID] = *event
		for i, spec := range specs {
			if f.failSlotInsertAt == i+1 {
				return repository.ErrTxConflict
			}
			slot := model.Slot{
				ID:          uuid.New().String(),
				EventID:     event.ID,
				StartTime:   spec.StartTime,
				EndTime:     spec.EndTime,
				MaxBookings: spec.MaxBookings,
				IsActive:    true,
			}
			f.slots[slot.ID] = slot
			slots = append(slots, slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (f *fakeRepo) ListPublic(ctx context.Context) ([]model.EventSummary, error) {
	var out []model.EventSummary
	for _, e := range f.events {
		if e.IsPrivate {
			continue
		}
		summary := model.EventSummary{Event: e}
		for _, s := range f.slots {
			if s.EventID != e.ID {
				continue
			}
			summary.TotalSlots++
			if s.IsBookable() {
				summary.AvailableSlots++
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error) {
	event, err := f.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	details := &model.EventDetails{Event: *event}
	for _, s := range f.slots {
		if s.EventID != eventID {
			continue
		}
		details.Slots = append(details.Slots, model.SlotView{Slot: s, IsAvailable: s.IsBookable()})
	}
	sort.Slice(details.Slots, func(i, j int) bool {
		return details.Slots[i].StartTime.Before(details.Slots[j].StartTime)
	})
	return details, nil
}

func (f *fakeRepo) GetForUpdate(ctx context.Context, slotID, eventID string) (*model.Slot, error) {
	s, ok := f.slots[slotID]
	if !ok || s.EventID != eventID {
		return nil, repository.ErrSlotNotFound
	}
	return &s, nil
}

func (f *fakeRepo) IncrementOccupancy(ctx context.Context, slotID string) error {
	s, ok := f.slots[slotID]
	if !ok {
		return repository.ErrSlotNotFound
	}
	if s.IsFull() {
		return repository.ErrSlotFull
	}
	s.CurrentBookings++
	f.slots[slotID] = s
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, slotID, eventID string) error {
	s, ok := f.slots[slotID]
	if !ok || s.EventID != eventID {
		return repository.ErrSlotNotFound
	}
	s.IsActive = false
	f.slots[slotID] = s
	return nil
}

func (f *fakeRepo) FindActive(ctx context.Context, slotID, guestEmail string) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.GuestEmail == guestEmail && b.Status == model.BookingScheduled {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Create(ctx context.Context, b *model.Booking) error {
	if f.createBookingErr != nil {
		return f.createBookingErr
	}
	if existing, _ := f.FindActive(ctx, b.SlotID, b.GuestEmail); existing != nil {
		return repository.ErrDuplicateBooking
	}
	b.ID = uuid.New().String()
	b.Status = model.BookingScheduled
	b.BookedAt = time.Now().UTC()
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeRepo) CancelByGuest(ctx context.Context, bookingID, guestEmail string) error {
	b, ok := f.bookings[bookingID]
	if !ok || b.GuestEmail != guestEmail || b.Status != model.BookingScheduled {
		return repository.ErrBookingNotFound
	}
	b.Status = model.BookingCancelled
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeRepo) ListByEmail(ctx context.Context, guestEmail string) ([]model.BookingView, error) {
	var out []model.BookingView
	for _, b := range f.bookings {
		if b.GuestEmail != guestEmail {
			continue
		}
		view := model.BookingView{
			ID:         b.ID,
			GuestName:  b.GuestName,
			GuestEmail: b.GuestEmail,
			Status:     b.Status,
			BookedAt:   b.BookedAt,
			SlotID:     b.SlotID,
			EventID:    b.EventID,
		}
		if s, ok := f.slots[b.SlotID]; ok {
			view.StartTime = s.StartTime
			view.EndTime = s.EndTime
		}
		if e, ok := f.events[b.EventID]; ok {
			view.EventTitle = e.Title
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookedAt.After(out[j].BookedAt) })
	return out, nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
