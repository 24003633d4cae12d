// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"strings"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
)

// EventGetter loads event rows. Reads join the active transaction when one
// is carried in the context.
type EventGetter interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// CapacityLedger is the slot occupancy ledger: the single point where slot
// state is read for booking and where the counter is mutated.
type CapacityLedger interface {
	GetForUpdate(ctx context.Context, slotID, eventID string) (*model.Slot, error)
	IncrementOccupancy(ctx context.Context, slotID string) error
}

// BookingStore persists bookings and owns the transaction boundary.
type BookingStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindActive(ctx context.Context, slotID, guestEmail string) (*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	CancelByGuest(ctx context.Context, bookingID, guestEmail string) error
	ListByEmail(ctx context.Context, guestEmail string) ([]model.BookingView, error)
}

// BookingService enforces the booking invariants: the capacity ceiling and
// the one-active-booking-per-guest-per-slot rule, both inside a single
// transaction.
type BookingService struct {
	events   EventGetter
	ledger   CapacityLedger
	bookings BookingStore
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(events EventGetter, ledger CapacityLedger, bookings BookingStore) *BookingService {
	return &BookingService{events: events, ledger: ledger, bookings: bookings}
}

// Reserve books one seat in a slot for a guest. All checks and writes run in
// one transaction: the slot row is locked, capacity and activity are
// verified, the duplicate pre-check runs, then the booking insert and the
// counter increment commit together or not at all. A conflict from the
// unique constraint surfaces as ErrDuplicateBooking; a coordinator conflict
// surfaces as ErrTxConflict and is never retried here, so a caller-side
// retry cannot double-insert.
func (s *BookingService) Reserve(ctx context.Context, eventID string, req model.ReserveRequest) (*model.ReserveResult, error) {
	if eventID == "" {
		return nil, invalid("event id is required")
	}
	if req.SlotID == "" {
		return nil, invalid("slot_id is required")
	}
	req.GuestName = strings.TrimSpace(req.GuestName)
	if len(req.GuestName) < 2 || len(req.GuestName) > 50 {
		return nil, invalid("guest_name must be between 2 and 50 characters")
	}
	if !isValidGuestName(req.GuestName) {
		return nil, invalid("guest_name must contain only letters and spaces")
	}
	req.GuestEmail = normalizeEmail(req.GuestEmail)
	if err := checkEmail(req.GuestEmail); err != nil {
		return nil, err
	}

	var result model.ReserveResult

	err := s.bookings.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.events.GetByID(txCtx, eventID)
		if err != nil {
			return err
		}

		slot, err := s.ledger.GetForUpdate(txCtx, req.SlotID, event.ID)
		if err != nil {
			return err
		}
		if slot.IsFull() {
			return repository.ErrSlotFull
		}
		if !slot.IsActive {
			return repository.ErrSlotInactive
		}

		existing, err := s.bookings.FindActive(txCtx, slot.ID, req.GuestEmail)
		if err != nil {
			return err
		}
		if existing != nil {
			return repository.ErrDuplicateBooking
		}

		booking := model.Booking{
			SlotID:     slot.ID,
			EventID:    event.ID,
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
		}
		if err := s.bookings.Create(txCtx, &booking); err != nil {
			return err
		}
		if err := s.ledger.IncrementOccupancy(txCtx, slot.ID); err != nil {
			return err
		}

		slot.CurrentBookings++
		result = model.ReserveResult{Booking: booking, Slot: *slot, Event: *event}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Cancel flips a guest's active booking to CANCELLED. Capacity is consumed
// permanently once booked: the slot counter is not decremented.
func (s *BookingService) Cancel(ctx context.Context, bookingID string, req model.CancelBookingRequest) error {
	if bookingID == "" {
		return invalid("booking id is required")
	}
	req.GuestEmail = normalizeEmail(req.GuestEmail)
	if err := checkEmail(req.GuestEmail); err != nil {
		return err
	}
	return s.bookings.CancelByGuest(ctx, bookingID, req.GuestEmail)
}

// ListByEmail returns the guest's bookings, newest first.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]model.BookingView, error) {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	return s.bookings.ListByEmail(ctx, email)
}
