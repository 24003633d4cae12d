package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pranavkale/eventslots/internal/model"
)

// SlotRepository is the capacity ledger: the single source of truth for a
// slot's configured capacity and committed booking count, and the only place
// where occupancy is mutated.
type SlotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository constructs a SlotRepository.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// GetForUpdate loads the slot scoped to its event and acquires an exclusive
// row-level lock (SELECT ... FOR UPDATE). Concurrent reserve attempts on the
// same slot block here until the holding transaction commits or rolls back,
// so no two callers can both observe free capacity and both increment past
// the maximum. Must be called inside an active transaction.
func (r *SlotRepository) GetForUpdate(ctx context.Context, slotID, eventID string) (*model.Slot, error) {
	var s model.Slot
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, event_id, start_time, end_time, max_bookings, current_bookings, is_active, created_at, updated_at
		 FROM event_slots
		 WHERE id = $1 AND event_id = $2
		 FOR UPDATE`,
		slotID, eventID,
	).Scan(&s.ID, &s.EventID, &s.StartTime, &s.EndTime, &s.MaxBookings, &s.CurrentBookings, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("lock slot row: %w", err)
	}
	return &s, nil
}

// IncrementOccupancy adds one committed booking to the slot counter and
// refreshes the update timestamp. All occupancy mutation passes through here,
// inside the reserve transaction; direct writes from any other path are
// forbidden.
func (r *SlotRepository) IncrementOccupancy(ctx context.Context, slotID string) error {
	tag, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE event_slots
		 SET current_bookings = current_bookings + 1, updated_at = now()
		 WHERE id = $1 AND current_bookings < max_bookings`,
		slotID,
	)
	if err != nil {
		return fmt.Errorf("increment occupancy: %w", err)
	}
	// The guard clause is belt-and-braces under the row lock; if it ever
	// fails to match, the capacity ceiling was about to be breached.
	if tag.RowsAffected() == 0 {
		return ErrSlotFull
	}
	return nil
}

// Deactivate marks the slot inactive so it rejects further bookings.
// Existing bookings and the occupancy counter are untouched.
func (r *SlotRepository) Deactivate(ctx context.Context, slotID, eventID string) error {
	tag, err := db(ctx, r.pool).Exec(ctx,
		`UPDATE event_slots SET is_active = false, updated_at = now()
		 WHERE id = $1 AND event_id = $2`,
		slotID, eventID,
	)
	if err != nil {
		return fmt.Errorf("deactivate slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}
