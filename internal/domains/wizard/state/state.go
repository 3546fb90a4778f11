// Package state implements the booking wizard as a pure reducer: a
// draft State plus an Action produce the next State. All persistence
// and lookups live in the service layer; everything here is
// deterministic and directly testable.
package state

import (
	"time"

	"sparkle/shared/constant"
)

const (
	StepCustomer   = 1
	StepService    = 2
	StepAssignment = 3
	StepReview     = 4
)

const (
	PriceModePackage  = "package"
	PriceModeCustom   = "custom"
	PriceModeOverride = "override"
)

const (
	ModeWizard = "wizard"
	ModeQuick  = "quick"
)

// CustomerInfo is the resolved customer a SELECT_CUSTOMER action refers to.
type CustomerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// PackageInfo is the resolved package a SELECT_PACKAGE action refers to.
// Price is already tier-resolved against the draft's area when the
// package is tiered.
type PackageInfo struct {
	ID              string  `json:"id"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// State is one user's booking draft.
type State struct {
	Step int `json:"step"`

	// step 1: customer
	CustomerID         string `json:"customer_id"`
	NewCustomerName    string `json:"new_customer_name"`
	NewCustomerPhone   string `json:"new_customer_phone"`
	UseCustomerAddress bool   `json:"use_customer_address"`

	// step 2: service and schedule
	PriceMode          string   `json:"price_mode"`
	PackageID          string   `json:"package_id"`
	PackageDuration    int      `json:"package_duration"`
	JobName            string   `json:"job_name"`
	BookingDate        string   `json:"booking_date"`
	EndDate            string   `json:"end_date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	EndTimeManuallySet bool     `json:"end_time_manually_set"`
	MultiDay           bool     `json:"multi_day"`
	IsRecurring        bool     `json:"is_recurring"`
	RecurrenceCount    int      `json:"recurrence_count"`
	Area               *float64 `json:"area"`
	TotalPrice         *float64 `json:"total_price"`
	CustomPrice        *float64 `json:"custom_price"`

	// step 3: assignment and address
	StaffID string `json:"staff_id"`
	TeamID  string `json:"team_id"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`

	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
}

// New returns the initial draft: step 1, package pricing, price 0.
func New() State {
	zero := 0.0

	return State{
		Step:       StepCustomer,
		PriceMode:  PriceModePackage,
		TotalPrice: &zero,
	}
}

const (
	ActionNextStep              = "NEXT_STEP"
	ActionPrevStep              = "PREV_STEP"
	ActionGotoStep              = "GOTO_STEP"
	ActionSelectCustomer        = "SELECT_CUSTOMER"
	ActionSetNewCustomer        = "SET_NEW_CUSTOMER"
	ActionSetPriceMode          = "SET_PRICE_MODE"
	ActionSelectPackage         = "SELECT_PACKAGE"
	ActionSetJobName            = "SET_JOB_NAME"
	ActionSetCustomPrice        = "SET_CUSTOM_PRICE"
	ActionSetOverridePrice      = "SET_OVERRIDE_PRICE"
	ActionSetBookingDate        = "SET_BOOKING_DATE"
	ActionSetEndDate            = "SET_END_DATE"
	ActionSetStartTime          = "SET_START_TIME"
	ActionSetEndTime            = "SET_END_TIME"
	ActionSetArea               = "SET_AREA"
	ActionToggleMultiDay        = "TOGGLE_MULTI_DAY"
	ActionToggleRecurring       = "TOGGLE_RECURRING"
	ActionToggleCustomerAddress = "TOGGLE_CUSTOMER_ADDRESS"
	ActionSetAssignment         = "SET_ASSIGNMENT"
	ActionSetAddress            = "SET_ADDRESS"
	ActionSetNotes              = "SET_NOTES"
)

// Action is a resolved wizard action. Reference fields (Customer,
// Package) are looked up by the service before Apply runs.
type Action struct {
	Type     string
	Step     int
	Customer *CustomerInfo
	Package  *PackageInfo
	Mode     string
	Value    string
	Name     string
	Phone    string
	Price    *float64
	Count    int
	Enabled  bool
	Manual   bool
	StaffID  string
	TeamID   string
	Address  string
	City     string
	State    string
	ZipCode  string
}

// Apply runs one transition. The input state is never mutated.
func Apply(s State, a Action) State {
	s.ValidationErrors = nil

	switch a.Type {
	case ActionNextStep:
		errs := ValidateStep(s, s.Step)
		if len(errs) > 0 {
			s.ValidationErrors = errs

			return s
		}

		if s.Step < StepReview {
			s.Step++
		}

	case ActionPrevStep:
		if s.Step > StepCustomer {
			s.Step--
		}

	case ActionGotoStep:
		// Backward jumps only (edit-from-review). Forward movement
		// must go through NEXT_STEP so validation cannot be skipped.
		if a.Step >= StepCustomer && a.Step < s.Step {
			s.Step = a.Step
		}

	case ActionSelectCustomer:
		if a.Customer == nil {
			return s
		}

		s.CustomerID = a.Customer.ID
		s.NewCustomerName = ""
		s.NewCustomerPhone = ""

		if a.Customer.Address != "" {
			s.UseCustomerAddress = true
			s.Address = a.Customer.Address
			s.City = a.Customer.City
			s.State = a.Customer.State
			s.ZipCode = a.Customer.ZipCode
		}

	case ActionSetNewCustomer:
		s.CustomerID = ""
		s.UseCustomerAddress = false
		s.NewCustomerName = a.Name
		s.NewCustomerPhone = a.Phone

	case ActionSetPriceMode:
		s = applyPriceMode(s, a.Mode)

	case ActionSelectPackage:
		if a.Package == nil {
			return s
		}

		s.PackageID = a.Package.ID
		s.PackageDuration = a.Package.DurationMinutes

		price := a.Package.Price
		s.TotalPrice = &price

		if !s.EndTimeManuallySet {
			s.EndTime = addMinutes(s.StartTime, a.Package.DurationMinutes)
		}

	case ActionSetJobName:
		s.JobName = a.Value

	case ActionSetCustomPrice:
		s.CustomPrice = a.Price

	case ActionSetOverridePrice:
		s.TotalPrice = a.Price

	case ActionSetBookingDate:
		s.BookingDate = a.Value

	case ActionSetEndDate:
		s.EndDate = a.Value

	case ActionSetStartTime:
		s.StartTime = a.Value

		if !s.EndTimeManuallySet && s.PackageDuration > 0 {
			s.EndTime = addMinutes(s.StartTime, s.PackageDuration)
		}

	case ActionSetEndTime:
		s.EndTime = a.Value

		if a.Manual {
			s.EndTimeManuallySet = true
		}

	case ActionSetArea:
		s.Area = a.Price

	case ActionToggleMultiDay:
		s.MultiDay = a.Enabled

		if a.Enabled {
			s.IsRecurring = false
			s.RecurrenceCount = 0
		} else {
			s.EndDate = ""
		}

	case ActionToggleRecurring:
		s.IsRecurring = a.Enabled

		if a.Enabled {
			s.MultiDay = false
			s.EndDate = ""
			s.RecurrenceCount = a.Count
		} else {
			s.RecurrenceCount = 0
		}

	case ActionToggleCustomerAddress:
		s.UseCustomerAddress = a.Enabled

		if a.Enabled && a.Customer != nil {
			s.Address = a.Customer.Address
			s.City = a.Customer.City
			s.State = a.Customer.State
			s.ZipCode = a.Customer.ZipCode
		}

		if !a.Enabled {
			s.Address = ""
			s.City = ""
			s.State = ""
			s.ZipCode = ""
		}

	case ActionSetAssignment:
		s.StaffID = a.StaffID
		s.TeamID = a.TeamID

	case ActionSetAddress:
		s.UseCustomerAddress = false
		s.Address = a.Address
		s.City = a.City
		s.State = a.State
		s.ZipCode = a.ZipCode

	case ActionSetNotes:
		s.Notes = a.Value
	}

	return s
}

func applyPriceMode(s State, mode string) State {
	switch mode {
	case PriceModeCustom:
		s.PriceMode = mode
		s.PackageID = ""
		s.PackageDuration = 0
		s.TotalPrice = nil

	case PriceModePackage:
		zero := 0.0

		s.PriceMode = mode
		s.TotalPrice = &zero
		s.CustomPrice = nil
		s.JobName = ""

	case PriceModeOverride:
		// Keeps the current total so an operator can hold a
		// package-derived price and adjust it.
		s.PriceMode = mode
		s.JobName = ""
	}

	return s
}

// addMinutes shifts an HH:MM clock time, clamping at invalid input by
// returning it unchanged.
func addMinutes(clock string, minutes int) string {
	if clock == "" || minutes <= 0 {
		return clock
	}

	t, err := time.Parse(constant.TimeOnlyFormat, clock)
	if err != nil {
		return clock
	}

	return t.Add(time.Duration(minutes) * time.Minute).Format(constant.TimeOnlyFormat)
}
