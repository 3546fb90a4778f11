package recurring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/recurring"
	gModel "sparkle/shared/model"
)

func strPtr(s string) *string {
	return &s
}

func booking(id, status string, date, createdAt time.Time, groupID *string) model.Booking {
	return model.Booking{
		ID:               id,
		Status:           status,
		BookingDate:      date,
		RecurringGroupID: groupID,
		Metadata: gModel.Metadata{
			CreatedAt: createdAt,
		},
	}
}

func TestBuildGroup(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	groupID := "group-1"

	bookings := []model.Booking{
		booking("b3", model.StatusConfirmed, now.AddDate(0, 0, 14), created.Add(2*time.Minute), &groupID),
		booking("b1", model.StatusCompleted, now.AddDate(0, 0, -14), created, &groupID),
		booking("b2", model.StatusConfirmed, now.AddDate(0, 0, 7), created.Add(time.Minute), &groupID),
	}

	group := recurring.BuildGroup(groupID, bookings, now)

	assert.Equal(t, groupID, group.RecurringGroupID)
	assert.Len(t, group.Bookings, 3)

	// Sorted by booking date ascending.
	assert.Equal(t, "b1", group.Bookings[0].ID)
	assert.Equal(t, "b2", group.Bookings[1].ID)
	assert.Equal(t, "b3", group.Bookings[2].ID)

	assert.Equal(t, group.Bookings[0].BookingDate, group.FirstDate)
	assert.Equal(t, group.Bookings[2].BookingDate, group.LastDate)
	assert.Equal(t, created.Add(2*time.Minute), group.LatestCreatedAt)

	// Future confirmed visits count as upcoming.
	assert.Equal(t, 1, group.StatusCounts[model.StatusCompleted])
	assert.Equal(t, 2, group.StatusCounts[model.StatusUpcoming])
	assert.Zero(t, group.StatusCounts[model.StatusConfirmed])
}

func TestBuildGroup_Empty(t *testing.T) {
	group := recurring.BuildGroup("group-1", nil, time.Now())

	assert.Empty(t, group.Bookings)
	assert.Empty(t, group.StatusCounts)
	assert.True(t, group.FirstDate.IsZero())
	assert.True(t, group.LastDate.IsZero())
}

func TestCombineHistory(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	groupID := "group-1"

	bookings := []model.Booking{
		// Standalone created between the group's two visits.
		booking("solo-old", model.StatusCompleted, now.AddDate(0, 0, -30), now.AddDate(0, 0, -30), nil),
		booking("g1", model.StatusCompleted, now.AddDate(0, 0, -21), now.AddDate(0, 0, -21), &groupID),
		booking("solo-new", model.StatusConfirmed, now.AddDate(0, 0, 3), now.AddDate(0, 0, -1), nil),
		booking("g2", model.StatusConfirmed, now.AddDate(0, 0, 7), now.AddDate(0, 0, -2), &groupID),
	}

	items := recurring.CombineHistory(bookings, now)

	if !assert.Len(t, items, 3) {
		return
	}

	// Most recently created first; the group sorts by its newest booking.
	assert.NotNil(t, items[0].Booking)
	assert.Equal(t, "solo-new", items[0].Booking.ID)

	if assert.NotNil(t, items[1].Group) {
		assert.Equal(t, groupID, items[1].Group.RecurringGroupID)
		assert.Len(t, items[1].Group.Bookings, 2)
	}

	assert.NotNil(t, items[2].Booking)
	assert.Equal(t, "solo-old", items[2].Booking.ID)
}

func TestCombineHistory_OnlyStandalone(t *testing.T) {
	now := time.Now()

	items := recurring.CombineHistory([]model.Booking{
		booking("b1", model.StatusCompleted, now, now.Add(-time.Hour), nil),
		booking("b2", model.StatusCompleted, now, now, nil),
	}, now)

	if assert.Len(t, items, 2) {
		assert.Equal(t, "b2", items[0].Booking.ID)
		assert.Equal(t, "b1", items[1].Booking.ID)
	}
}
