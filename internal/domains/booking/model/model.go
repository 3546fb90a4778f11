package model

import (
	"time"

	"sparkle/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldCustomerID       = "customer_id"
	FieldPackageID        = "package_id"
	FieldJobName          = "job_name"
	FieldBookingDate      = "booking_date"
	FieldStartTime        = "start_time"
	FieldEndTime          = "end_time"
	FieldStaffID          = "staff_id"
	FieldTeamID           = "team_id"
	FieldAddress          = "address"
	FieldCity             = "city"
	FieldState            = "state"
	FieldZipCode          = "zip_code"
	FieldArea             = "area"
	FieldPriceMode        = "price_mode"
	FieldTotalPrice       = "total_price"
	FieldStatus           = "status"
	FieldPaymentStatus    = "payment_status"
	FieldPaymentSlipURL   = "payment_slip_url"
	FieldRecurringGroupID = "recurring_group_id"
	FieldNotes            = "notes"
	FieldCreatedBy        = "created_by"
)

const (
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"

	// StatusUpcoming is derived, never stored: a confirmed booking whose
	// date is still ahead of the reference time.
	StatusUpcoming = "upcoming"
)

const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPendingReview = "pending_review"
	PaymentStatusPaid          = "paid"
)

const (
	PriceModePackage  = "package"
	PriceModeCustom   = "custom"
	PriceModeOverride = "override"
)

// Booking is a single service visit. StaffID and TeamID are mutually
// exclusive; recurring visits share a RecurringGroupID.
type Booking struct {
	ID               string    `db:"id"`
	CustomerID       string    `db:"customer_id"`
	PackageID        *string   `db:"package_id"`
	JobName          *string   `db:"job_name"`
	BookingDate      time.Time `db:"booking_date"`
	StartTime        string    `db:"start_time"`
	EndTime          string    `db:"end_time"`
	StaffID          *string   `db:"staff_id"`
	TeamID           *string   `db:"team_id"`
	Address          string    `db:"address"`
	City             string    `db:"city"`
	State            string    `db:"state"`
	ZipCode          string    `db:"zip_code"`
	Area             *float64  `db:"area"`
	PriceMode        string    `db:"price_mode"`
	TotalPrice       float64   `db:"total_price"`
	Status           string    `db:"status"`
	PaymentStatus    string    `db:"payment_status"`
	PaymentSlipURL   *string   `db:"payment_slip_url"`
	RecurringGroupID *string   `db:"recurring_group_id"`
	Notes            *string   `db:"notes"`
	model.Metadata
	model.SoftDelete
}

// EffectiveStatus derives the display status against a reference time.
func (b *Booking) EffectiveStatus(now time.Time) string {
	if b.Status == StatusConfirmed && b.BookingDate.After(now) {
		return StatusUpcoming
	}

	return b.Status
}

func ValidStatus(status string) bool {
	switch status {
	case StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}
