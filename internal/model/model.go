// Package model defines the core domain types for the slot booking system.
package model

import "time"

// BookingStatus is the lifecycle state of a booking. Bookings are never
// deleted; cancellation is a status transition.
type BookingStatus string

const (
	BookingScheduled BookingStatus = "SCHEDULED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// User is an organizer account. Outside the booking core, but events
// reference their owner.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event is a bookable event published by an organizer. Private events are
// hidden from the public list but reachable by direct identifier.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Slot is a bounded-capacity time window belonging to an event. The
// CurrentBookings counter is mutated only inside the reserve transaction.
type Slot struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxBookings     int       `json:"max_bookings"`
	CurrentBookings int       `json:"current_bookings"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Remaining returns the number of seats left in the slot.
func (s *Slot) Remaining() int {
	return s.MaxBookings - s.CurrentBookings
}

// IsFull returns true when no seats remain.
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxBookings
}

// IsBookable returns true when the slot is active and has capacity left.
func (s *Slot) IsBookable() bool {
	return s.IsActive && !s.IsFull()
}

// Booking is a guest's reservation of one seat in a slot. EventID is
// denormalized for read convenience; the slot remains the owning reference.
type Booking struct {
	ID         string        `json:"id"`
	SlotID     string        `json:"slot_id"`
	EventID    string        `json:"event_id"`
	GuestName  string        `json:"guest_name"`
	GuestEmail string        `json:"guest_email"`
	Status     BookingStatus `json:"status"`
	BookedAt   time.Time     `json:"booked_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// EventSummary is a public list entry annotated with slot availability.
type EventSummary struct {
	Event
	TotalSlots     int `json:"total_slots"`
	AvailableSlots int `json:"available_slots"`
}

// SlotView is a slot annotated with its derived availability flag.
type SlotView struct {
	Slot
	IsAvailable bool `json:"is_available"`
}

// EventDetails is an event together with its ordered slot list.
type EventDetails struct {
	Event
	Slots []SlotView `json:"slots"`
}

// BookingView is a guest-facing booking joined with slot times and the
// event title, used by the bookings-by-email listing.
type BookingView struct {
	ID         string        `json:"id"`
	GuestName  string        `json:"guest_name"`
	GuestEmail string        `json:"guest_email"`
	Status     BookingStatus `json:"status"`
	BookedAt   time.Time     `json:"booked_at"`
	SlotID     string        `json:"slot_id"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	EventID    string        `json:"event_id"`
	EventTitle string        `json:"event_title"`
}

// SlotSpec is the payload describing one slot of a new event.
type SlotSpec struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxBookings int       `json:"max_bookings"`
}

// CreateEventRequest is the payload for creating a new event with its slots.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	Slots       []SlotSpec `json:"slots"`
}

// ReserveRequest is the payload for booking a seat in a slot.
type ReserveRequest struct {
	SlotID     string `json:"slot_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

// ReserveResult carries the committed booking together with the slot and
// event snapshots used for confirmation messaging.
type ReserveResult struct {
	Booking Booking `json:"booking"`
	Slot    Slot    `json:"slot"`
	Event   Event   `json:"event"`
}

// CancelBookingRequest identifies the guest cancelling a booking.
type CancelBookingRequest struct {
	GuestEmail string `json:"guest_email"`
}

// SignupRequest is the payload for creating an organizer account.
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the payload for organizer login.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
