// Package recurring folds bookings that share a recurring_group_id into
// a single group view for history screens.
package recurring

import (
	"sort"
	"time"

	"sparkle/internal/domains/booking/model"
)

// Group is the aggregated view of one recurring series.
type Group struct {
	RecurringGroupID string
	Bookings         []model.Booking
	StatusCounts     map[string]int
	FirstDate        time.Time
	LastDate         time.Time
	LatestCreatedAt  time.Time
}

// BuildGroup aggregates one series: bookings sorted by date ascending,
// with status counts derived against the reference time so future
// confirmed visits count as upcoming.
func BuildGroup(groupID string, bookings []model.Booking, now time.Time) Group {
	sorted := make([]model.Booking, len(bookings))
	copy(sorted, bookings)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BookingDate.Before(sorted[j].BookingDate)
	})

	group := Group{
		RecurringGroupID: groupID,
		Bookings:         sorted,
		StatusCounts:     make(map[string]int),
	}

	for i := range sorted {
		group.StatusCounts[sorted[i].EffectiveStatus(now)]++

		if sorted[i].CreatedAt.After(group.LatestCreatedAt) {
			group.LatestCreatedAt = sorted[i].CreatedAt
		}
	}

	if len(sorted) > 0 {
		group.FirstDate = sorted[0].BookingDate
		group.LastDate = sorted[len(sorted)-1].BookingDate
	}

	return group
}

// HistoryItem is one entry of a combined history view: either a whole
// recurring group or a standalone booking.
type HistoryItem struct {
	Group     *Group
	Booking   *model.Booking
	CreatedAt time.Time
}

// CombineHistory interleaves recurring groups with standalone bookings,
// most recently created first. A group sorts by the creation time of its
// newest booking.
func CombineHistory(bookings []model.Booking, now time.Time) []HistoryItem {
	groups := make(map[string][]model.Booking)
	standalone := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.RecurringGroupID != nil {
			groups[*booking.RecurringGroupID] = append(groups[*booking.RecurringGroupID], booking)

			continue
		}

		standalone = append(standalone, booking)
	}

	items := make([]HistoryItem, 0, len(groups)+len(standalone))

	for groupID, members := range groups {
		group := BuildGroup(groupID, members, now)

		items = append(items, HistoryItem{
			Group:     &group,
			CreatedAt: group.LatestCreatedAt,
		})
	}

	for i := range standalone {
		items = append(items, HistoryItem{
			Booking:   &standalone[i],
			CreatedAt: standalone[i].CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items
}
