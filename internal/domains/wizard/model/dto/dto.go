package dto

import (
	"sparkle/internal/domains/wizard/state"
)

// ActionRequest is the wire form of a wizard action. Reference ids are
// resolved server-side before the reducer runs.
type ActionRequest struct {
	Type       string   `json:"type"        validate:"required"`
	Step       int      `json:"step"        validate:"omitempty,min=1,max=4"`
	CustomerID string   `json:"customer_id" validate:"omitempty,uuid"`
	PackageID  string   `json:"package_id"  validate:"omitempty,uuid"`
	Mode       string   `json:"mode"        validate:"omitempty,oneof=package custom override"`
	Value      string   `json:"value"       validate:"omitempty,max=255"`
	Name       string   `json:"name"        validate:"omitempty,max=100"`
	Phone      string   `json:"phone"       validate:"omitempty,max=20"`
	Price      *float64 `json:"price"       validate:"omitempty"`
	Count      int      `json:"count"       validate:"omitempty,min=0"`
	Enabled    bool     `json:"enabled"`
	Manual     bool     `json:"manual"`
	StaffID    string   `json:"staff_id"    validate:"omitempty,uuid"`
	TeamID     string   `json:"team_id"     validate:"omitempty,uuid"`
	Address    string   `json:"address"     validate:"omitempty,max=255"`
	City       string   `json:"city"        validate:"omitempty,max=100"`
	State      string   `json:"state"       validate:"omitempty,max=100"`
	ZipCode    string   `json:"zip_code"    validate:"omitempty,max=10"`
}

type DraftResponse struct {
	State state.State `json:"state"`
}

type SubmitResponse struct {
	BookingIDs       []string `json:"booking_ids"`
	RecurringGroupID *string  `json:"recurring_group_id,omitempty"`
	CustomerID       string   `json:"customer_id"`
}

type PreferenceRequest struct {
	Mode string `json:"mode" validate:"required,oneof=wizard quick"`
}

type PreferenceResponse struct {
	Mode string `json:"mode"`
}
