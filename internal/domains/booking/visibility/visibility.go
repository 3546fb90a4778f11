// Package visibility decides which team bookings a staff member may see.
//
// Team bookings are scoped by membership period: a member sees a booking
// only when the booking was created while they belonged to the assigned
// team. Both the query path and the realtime event relevance check go
// through VisibleTo so the two can never drift apart.
package visibility

import "time"

// MembershipPeriod is one interval of team membership. LeftAt is nil
// while the membership is still open.
type MembershipPeriod struct {
	TeamID   string
	JoinedAt time.Time
	LeftAt   *time.Time
}

// BookingRef carries the assignment fields the check needs. At most one
// of StaffID/TeamID is set.
type BookingRef struct {
	StaffID   *string
	TeamID    *string
	CreatedAt time.Time
}

// CoveredBy reports whether the instant falls inside the period.
// Both boundaries are inclusive: a member who left at exactly the
// booking's creation instant still sees that booking.
func (p MembershipPeriod) CoveredBy(at time.Time) bool {
	if at.Before(p.JoinedAt) {
		return false
	}

	return p.LeftAt == nil || !at.After(*p.LeftAt)
}

// VisibleTo reports whether the staff member may see the booking.
// Direct assignments match on staff id alone. Team assignments require
// a membership period of that team covering the booking's creation time.
func VisibleTo(booking BookingRef, staffID string, periods []MembershipPeriod) bool {
	if booking.StaffID != nil {
		return *booking.StaffID == staffID
	}

	if booking.TeamID == nil {
		return false
	}

	for _, period := range periods {
		if period.TeamID != *booking.TeamID {
			continue
		}

		if period.CoveredBy(booking.CreatedAt) {
			return true
		}
	}

	return false
}

// Filter keeps the bookings in refs that the staff member may see and
// returns their indexes, preserving order.
func Filter(refs []BookingRef, staffID string, periods []MembershipPeriod) []int {
	visible := make([]int, 0, len(refs))

	for i, ref := range refs {
		if VisibleTo(ref, staffID, periods) {
			visible = append(visible, i)
		}
	}

	return visible
}
