package visibility_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sparkle/internal/domains/booking/visibility"
)

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestMembershipPeriod_CoveredBy(t *testing.T) {
	joined := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	left := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period visibility.MembershipPeriod
		at     time.Time
		want   bool
	}{
		{
			name:   "inside the period",
			period: visibility.MembershipPeriod{JoinedAt: joined, LeftAt: timePtr(left)},
			at:     time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "before joining",
			period: visibility.MembershipPeriod{JoinedAt: joined, LeftAt: timePtr(left)},
			at:     joined.Add(-time.Second),
			want:   false,
		},
		{
			name:   "exactly at join time",
			period: visibility.MembershipPeriod{JoinedAt: joined, LeftAt: timePtr(left)},
			at:     joined,
			want:   true,
		},
		{
			name:   "exactly at leave time",
			period: visibility.MembershipPeriod{JoinedAt: joined, LeftAt: timePtr(left)},
			at:     left,
			want:   true,
		},
		{
			name:   "after leaving",
			period: visibility.MembershipPeriod{JoinedAt: joined, LeftAt: timePtr(left)},
			at:     left.Add(time.Second),
			want:   false,
		},
		{
			name:   "open period covers any later instant",
			period: visibility.MembershipPeriod{JoinedAt: joined},
			at:     joined.AddDate(10, 0, 0),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.CoveredBy(tt.at))
		})
	}
}

func TestVisibleTo(t *testing.T) {
	createdAt := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	periods := []visibility.MembershipPeriod{
		{
			TeamID:   "team-a",
			JoinedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			LeftAt:   timePtr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			TeamID:   "team-b",
			JoinedAt: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name    string
		booking visibility.BookingRef
		want    bool
	}{
		{
			name:    "direct assignment to the staff member",
			booking: visibility.BookingRef{StaffID: strPtr("staff-1"), CreatedAt: createdAt},
			want:    true,
		},
		{
			name:    "direct assignment to someone else",
			booking: visibility.BookingRef{StaffID: strPtr("staff-2"), CreatedAt: createdAt},
			want:    false,
		},
		{
			name:    "team booking created during membership",
			booking: visibility.BookingRef{TeamID: strPtr("team-a"), CreatedAt: createdAt},
			want:    true,
		},
		{
			name:    "team booking created after leaving",
			booking: visibility.BookingRef{TeamID: strPtr("team-a"), CreatedAt: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)},
			want:    false,
		},
		{
			name:    "team booking created before joining",
			booking: visibility.BookingRef{TeamID: strPtr("team-b"), CreatedAt: createdAt},
			want:    false,
		},
		{
			name:    "open membership covers new bookings",
			booking: visibility.BookingRef{TeamID: strPtr("team-b"), CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
			want:    true,
		},
		{
			name:    "never a member of the team",
			booking: visibility.BookingRef{TeamID: strPtr("team-c"), CreatedAt: createdAt},
			want:    false,
		},
		{
			name:    "unassigned booking",
			booking: visibility.BookingRef{CreatedAt: createdAt},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visibility.VisibleTo(tt.booking, "staff-1", periods))
		})
	}
}

func TestVisibleTo_RejoinedMember(t *testing.T) {
	// Two periods for the same team: a closed one and the current one.
	// The gap between them stays invisible.
	periods := []visibility.MembershipPeriod{
		{
			TeamID:   "team-a",
			JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			LeftAt:   timePtr(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			TeamID:   "team-a",
			JoinedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	during := visibility.BookingRef{TeamID: strPtr("team-a"), CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)}
	gap := visibility.BookingRef{TeamID: strPtr("team-a"), CreatedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)}
	after := visibility.BookingRef{TeamID: strPtr("team-a"), CreatedAt: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)}

	assert.True(t, visibility.VisibleTo(during, "staff-1", periods))
	assert.False(t, visibility.VisibleTo(gap, "staff-1", periods))
	assert.True(t, visibility.VisibleTo(after, "staff-1", periods))
}

func TestFilter(t *testing.T) {
	periods := []visibility.MembershipPeriod{
		{TeamID: "team-a", JoinedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	refs := []visibility.BookingRef{
		{StaffID: strPtr("staff-1"), CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{StaffID: strPtr("staff-2"), CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{TeamID: strPtr("team-a"), CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{TeamID: strPtr("team-b"), CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, []int{0, 2}, visibility.Filter(refs, "staff-1", periods))
}
