package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkale/eventslots/internal/model"
	"github.com/pranavkale/eventslots/internal/repository"
	"github.com/pranavkale/eventslots/internal/testutil"
)

func TestEventRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	events := repository.NewEventRepository(pool)

	newEvent := func(title string, private bool, userID string) *model.Event {
		return &model.Event{
			Title:       title,
			Description: "An event used by the integration tests.",
			IsPrivate:   private,
			UserID:      userID,
		}
	}

	futureSpecs := func(n int) []model.SlotSpec {
		start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		specs := make([]model.SlotSpec, n)
		for i := range specs {
			specs[i] = model.SlotSpec{
				StartTime:   start.Add(time.Duration(i) * time.Hour),
				EndTime:     start.Add(time.Duration(i)*time.Hour + 30*time.Minute),
				MaxBookings: 3,
			}
		}
		return specs
	}

	t.Run("create with slots and read back details", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "organizer")

		event := newEvent("Go Meetup", false, userID)
		slots, err := events.CreateWithSlots(ctx, event, futureSpecs(3))
		require.NoError(t, err)
		require.Len(t, slots, 3)

		details, err := events.GetDetails(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Meetup", details.Title)
		require.Len(t, details.Slots, 3)
		for i := 1; i < len(details.Slots); i++ {
			assert.True(t, details.Slots[i].StartTime.After(details.Slots[i-1].StartTime),
				"slots must be ordered by start time")
		}
		for _, s := range details.Slots {
			assert.True(t, s.IsAvailable)
		}
	})

	t.Run("failed slot insert leaves no event behind", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "organizer")

		specs := futureSpecs(5)
		// The fourth slot violates the end-after-start check constraint.
		specs[3].EndTime = specs[3].StartTime.Add(-time.Minute)

		_, err := events.CreateWithSlots(ctx, newEvent("Broken", false, userID), specs)
		require.Error(t, err)

		var eventCount, slotCount int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&eventCount))
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM event_slots`).Scan(&slotCount))
		assert.Zero(t, eventCount)
		assert.Zero(t, slotCount)
	})

	t.Run("public list hides private events and counts availability", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		userID := testutil.InsertUser(t, ctx, pool, "organizer")

		public := newEvent("Public", false, userID)
		_, err := events.CreateWithSlots(ctx, public, futureSpecs(2))
		require.NoError(t, err)
		private := newEvent("Private", true, userID)
		_, err = events.CreateWithSlots(ctx, private, futureSpecs(1))
		require.NoError(t, err)

		list, err := events.ListPublic(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Public", list[0].Title)
		assert.Equal(t, 2, list[0].TotalSlots)
		assert.Equal(t, 2, list[0].AvailableSlots)

		// Private events stay reachable by direct identifier.
		details, err := events.GetDetails(ctx, private.ID)
		require.NoError(t, err)
		assert.Equal(t, "Private", details.Title)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		_, err := events.GetByID(ctx, "3b9f421e-8f5c-4f3e-9a37-0d8ff7c0a111")
		assert.ErrorIs(t, err, repository.ErrEventNotFound)

		_, err = events.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})
}
