package repository

import "errors"

// ErrEventNotFound is returned when a requested event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrSlotNotFound is returned when a slot does not exist or does not belong
// to the given event.
var ErrSlotNotFound = errors.New("slot not found")

// ErrBookingNotFound is returned when no matching active booking exists.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSlotFull is returned when a slot has no remaining capacity.
var ErrSlotFull = errors.New("slot is fully booked")

// ErrSlotInactive is returned when a slot has been deactivated.
var ErrSlotInactive = errors.New("slot is not active")

// ErrDuplicateBooking is returned when the same email already holds an
// active booking for the slot, whether detected by the pre-check or by the
// unique constraint at insert time.
var ErrDuplicateBooking = errors.New("already booked this slot")

// ErrEmailTaken is returned when a signup email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrUsernameTaken is returned when a signup username is already in use.
var ErrUsernameTaken = errors.New("username already taken")

// ErrNotOwner is returned when a caller tries to mutate an event they do
// not own.
var ErrNotOwner = errors.New("not the event owner")

// ErrTxConflict is returned when the storage engine aborts a transaction on
// a concurrency conflict. Safe for the caller to retry once; never retried
// internally.
var ErrTxConflict = errors.New("transaction conflict")
