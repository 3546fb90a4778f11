package dto

import (
	"time"

	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/recurring"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
)

// UpdateBookingRequest patches a booking. StaffID and TeamID reassign
// it: an empty string clears that side, and the merged result may keep
// at most one side set.
type UpdateBookingRequest struct {
	JobName     *string  `db:"job_name"     json:"job_name"     validate:"omitempty,max=100"`
	BookingDate string   `json:"booking_date"                   validate:"omitempty"`
	StartTime   string   `db:"start_time"   json:"start_time"   validate:"omitempty"`
	EndTime     string   `db:"end_time"     json:"end_time"     validate:"omitempty"`
	StaffID     *string  `json:"staff_id"                       validate:"omitempty,max=36"`
	TeamID      *string  `json:"team_id"                        validate:"omitempty,max=36"`
	Address     string   `db:"address"      json:"address"      validate:"omitempty,max=255"`
	City        string   `db:"city"         json:"city"         validate:"omitempty,max=100"`
	State       string   `db:"state"        json:"state"        validate:"omitempty,max=100"`
	ZipCode     string   `db:"zip_code"     json:"zip_code"     validate:"omitempty,max=10"`
	Area        *float64 `db:"area"         json:"area"         validate:"omitempty,gte=0"`
	TotalPrice  *float64 `db:"total_price"  json:"total_price"  validate:"omitempty,gte=0"`
	Notes       *string  `db:"notes"        json:"notes"        validate:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled no_show"`
}

type BookingResponse struct {
	ID               string   `json:"id"`
	CustomerID       string   `json:"customer_id"`
	PackageID        *string  `json:"package_id,omitempty"`
	JobName          *string  `json:"job_name,omitempty"`
	BookingDate      string   `json:"booking_date"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	StaffID          *string  `json:"staff_id,omitempty"`
	TeamID           *string  `json:"team_id,omitempty"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zip_code"`
	Area             *float64 `json:"area,omitempty"`
	PriceMode        string   `json:"price_mode"`
	TotalPrice       float64  `json:"total_price"`
	Status           string   `json:"status"`
	EffectiveStatus  string   `json:"effective_status"`
	PaymentStatus    string   `json:"payment_status"`
	PaymentSlipURL   *string  `json:"payment_slip_url,omitempty"`
	RecurringGroupID *string  `json:"recurring_group_id,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking, now time.Time) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.PackageID = mod.PackageID
	r.JobName = mod.JobName
	r.BookingDate = mod.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.StaffID = mod.StaffID
	r.TeamID = mod.TeamID
	r.Address = mod.Address
	r.City = mod.City
	r.State = mod.State
	r.ZipCode = mod.ZipCode
	r.Area = mod.Area
	r.PriceMode = mod.PriceMode
	r.TotalPrice = mod.TotalPrice
	r.Status = mod.Status
	r.EffectiveStatus = mod.EffectiveStatus(now)
	r.PaymentStatus = mod.PaymentStatus
	r.PaymentSlipURL = mod.PaymentSlipURL
	r.RecurringGroupID = mod.RecurringGroupID
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, now)
	}
}

type GroupResponse struct {
	RecurringGroupID string            `json:"recurring_group_id"`
	Bookings         []BookingResponse `json:"bookings"`
	StatusCounts     map[string]int    `json:"status_counts"`
	FirstDate        string            `json:"first_date"`
	LastDate         string            `json:"last_date"`
}

func (r *GroupResponse) FromGroup(group recurring.Group, now time.Time) {
	r.RecurringGroupID = group.RecurringGroupID
	r.StatusCounts = group.StatusCounts
	r.FirstDate = group.FirstDate.Format(constant.DateOnlyFormat)
	r.LastDate = group.LastDate.Format(constant.DateOnlyFormat)

	r.Bookings = make([]BookingResponse, len(group.Bookings))
	for i, mod := range group.Bookings {
		r.Bookings[i].FromModel(mod, now)
	}
}

type HistoryItemResponse struct {
	Kind    string           `json:"kind"`
	Group   *GroupResponse   `json:"group,omitempty"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

type HistoryResponse struct {
	Items []HistoryItemResponse `json:"items"`
}

func (r *HistoryResponse) FromItems(items []recurring.HistoryItem, now time.Time) {
	r.Items = make([]HistoryItemResponse, len(items))

	for i, item := range items {
		if item.Group != nil {
			group := GroupResponse{}
			group.FromGroup(*item.Group, now)

			r.Items[i] = HistoryItemResponse{Kind: "recurring_group", Group: &group}

			continue
		}

		booking := BookingResponse{}
		booking.FromModel(*item.Booking, now)

		r.Items[i] = HistoryItemResponse{Kind: "booking", Booking: &booking}
	}
}
