package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pranavkale/eventslots/internal/model"
)

// BookingRepository handles persistence for bookings. It is the only writer
// of booking rows.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// WithTx runs fn inside a transaction shared by every repository call made
// with the returned context. Nested calls join the outer transaction.
func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// FindActive returns the SCHEDULED booking for (slot, guest email), or nil
// when none exists. Used as the fail-fast duplicate pre-check inside the
// reserve transaction; the partial unique index remains the ground truth.
func (r *BookingRepository) FindActive(ctx context.Context, slotID, guestEmail string) (*model.Booking, error) {
	var b model.Booking
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, slot_id, event_id, guest_name, guest_email, status, booked_at, updated_at
		 FROM bookings
		 WHERE slot_id = $1 AND guest_email = $2 AND status = 'SCHEDULED'`,
		slotID, guestEmail,
	).Scan(&b.ID, &b.SlotID, &b.EventID, &b.GuestName, &b.GuestEmail, &b.Status, &b.BookedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active booking: %w", err)
	}
	return &b, nil
}

// Create inserts a new SCHEDULED booking. A unique violation on the partial
// index over (slot_id, guest_email) WHERE status = 'SCHEDULED' maps to
// ErrDuplicateBooking, covering the race where two transactions both pass
// the pre-check before either commits.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	now := time.Now().UTC()
	b.ID = uuid.New().String()
	b.Status = model.BookingScheduled
	b.BookedAt = now
	b.UpdatedAt = now

	_, err := db(ctx, r.pool).Exec(ctx,
		`INSERT INTO bookings (id, slot_id, event_id, guest_name, guest_email, status, booked_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.SlotID, b.EventID, b.GuestName, b.GuestEmail, b.Status, b.BookedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// CancelByGuest flips the guest's SCHEDULED booking to CANCELLED. The slot
// counter is deliberately not decremented: capacity is consumed permanently
// once booked. Returns ErrBookingNotFound when no active booking matches
// the id and email.
func (r *BookingRepository) CancelByGuest(ctx context.Context, bookingID, guestEmail string) error {
	tag, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE bookings SET status = 'CANCELLED', updated_at = now()
		 WHERE id = $1 AND guest_email = $2 AND status = 'SCHEDULED'`,
		bookingID, guestEmail,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListByEmail returns the guest's bookings newest first, joined with slot
// times and the event title.
func (r *BookingRepository) ListByEmail(ctx context.Context, guestEmail string) ([]model.BookingView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.guest_name, b.guest_email, b.status, b.booked_at,
		        s.id, s.start_time, s.end_time,
		        e.id, e.title
		 FROM bookings b
		 JOIN event_slots s ON s.id = b.slot_id
		 JOIN events e ON e.id = b.event_id
		 WHERE b.guest_email = $1
		 ORDER BY b.booked_at DESC`,
		guestEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var views []model.BookingView
	for rows.Next() {
		var v model.BookingView
		if err := rows.Scan(
			&v.ID, &v.GuestName, &v.GuestEmail, &v.Status, &v.BookedAt,
			&v.SlotID, &v.StartTime, &v.EndTime,
			&v.EventID, &v.EventTitle,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
