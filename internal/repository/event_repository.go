// Package repository implements all database queries for the slot booking
// system. It uses pgx directly (no ORM) for transparency and performance.
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

// EventRepository handles persistence for events and their read views.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// CreateWithSlots inserts an event and all of its slots as one transaction.
// A partially created event (event without its slots) can never be observed:
// any failed insert rolls the whole attempt back.
func (r *EventRepository) CreateWithSlots(ctx context.Context, event *model.Event, specs []model.SlotSpec) ([]model.Slot, error) {
	now := time.Now().UTC()
	event.ID = uuid.New().String()
	event.CreatedAt = now
	event.UpdatedAt = now

	slots := make([]model.Slot, 0, len(specs))

	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		q := db(txCtx, r.pool)

		_, err := q.Exec(txCtx,
			`INSERT INTO events (id, title, description, is_private, user_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			event.ID, event.Title, event.Description, event.IsPrivate, event.UserID, event.CreatedAt, event.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		for _, spec := range specs {
			slot := model.Slot{
				ID:          uuid.New().String(),
				EventID:     event.ID,
				StartTime:   spec.StartTime,
				EndTime:     spec.EndTime,
				MaxBookings: spec.MaxBookings,
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			_, err := q.Exec(txCtx,
				`INSERT INTO event_slots (id, event_id, start_time, end_time, max_bookings, current_bookings, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, 0, true, $6, $7)`,
				slot.ID, slot.EventID, slot.StartTime, slot.EndTime, slot.MaxBookings, slot.CreatedAt, slot.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert slot: %w", err)
			}
			slots = append(slots, slot)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByID returns a single event or ErrEventNotFound. Reads through the
// active transaction when one is carried in the context.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := db(ctx, r.pool).QueryRow(ctx,
		`SELECT id, title, description, is_private, user_id, created_at, updated_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.IsPrivate, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ListPublic returns all public events annotated with slot totals, ordered
// by creation time descending.
func (r *EventRepository) ListPublic(ctx context.Context) ([]model.EventSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.title, e.description, e.is_private, e.user_id, e.created_at, e.updated_at,
		        COUNT(s.id),
		        COUNT(s.id) FILTER (WHERE s.is_active AND s.current_bookings < s.max_bookings)
		 FROM events e
		 LEFT JOIN event_slots s ON s.event_id = e.id
		 WHERE e.is_private = false
		 GROUP BY e.id
		 ORDER BY e.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.EventSummary
	for rows.Next() {
		var ev model.EventSummary
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.IsPrivate, &ev.UserID, &ev.CreatedAt, &ev.UpdatedAt,
			&ev.TotalSlots, &ev.AvailableSlots,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetDetails returns an event with its slots ordered by start time ascending,
// each annotated with a derived availability flag. Private events are
// reachable here by direct identifier; there is no visibility filter.
func (r *EventRepository) GetDetails(ctx context.Context, eventID string) (*model.EventDetails, error) {
	event, err := r.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows, err := db(ctx, r.pool).Query(ctx,
		`SELECT id, event_id, start_time, end_time, max_bookings, current_bookings, is_active, created_at, updated_at
		 FROM event_slots
		 WHERE event_id = $1
		 ORDER BY start_time ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	details := &model.EventDetails{Event: *event}
	for rows.Next() {
		var sv model.SlotView
		if err := rows.Scan(
			&sv.ID, &sv.EventID, &sv.StartTime, &sv.EndTime,
			&sv.MaxBookings, &sv.CurrentBookings, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		sv.IsAvailable = sv.IsBookable()
		details.Slots = append(details.Slots, sv)
	}
	return details, rows.Err()
}
