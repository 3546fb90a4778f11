package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sparkle/internal/domains/wizard/state"
)

func TestValidateStep_Customer(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *state.State)
		wantFields []string
	}{
		{
			name:       "empty draft needs a customer",
			setup:      func(s *state.State) {},
			wantFields: []string{"customer_name", "customer_phone"},
		},
		{
			name: "selected customer passes",
			setup: func(s *state.State) {
				s.CustomerID = "customer-id"
			},
		},
		{
			name: "new customer with name and phone passes",
			setup: func(s *state.State) {
				s.NewCustomerName = "Walk In"
				s.NewCustomerPhone = "0812345678"
			},
		},
		{
			name: "new customer without a phone fails",
			setup: func(s *state.State) {
				s.NewCustomerName = "Walk In"
			},
			wantFields: []string{"customer_phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.New()
			tt.setup(&s)

			errs := state.ValidateStep(s, state.StepCustomer)

			assert.Len(t, errs, len(tt.wantFields))

			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateStep_Service(t *testing.T) {
	base := func() state.State {
		s := state.New()
		s.PackageID = "package-id"
		s.BookingDate = "2026-09-01"
		s.StartTime = "09:00"

		return s
	}

	tests := []struct {
		name       string
		setup      func(s *state.State)
		wantFields []string
	}{
		{
			name:  "complete package draft passes",
			setup: func(s *state.State) {},
		},
		{
			name: "missing date and time",
			setup: func(s *state.State) {
				s.BookingDate = ""
				s.StartTime = ""
			},
			wantFields: []string{"booking_date", "start_time"},
		},
		{
			name: "package mode without a package",
			setup: func(s *state.State) {
				s.PackageID = ""
			},
			wantFields: []string{"package_id"},
		},
		{
			name: "multi-day without an end date",
			setup: func(s *state.State) {
				s.MultiDay = true
			},
			wantFields: []string{"end_date"},
		},
		{
			name: "recurring with a single visit",
			setup: func(s *state.State) {
				s.IsRecurring = true
				s.RecurrenceCount = 1
			},
			wantFields: []string{"recurrence_count"},
		},
		{
			name: "custom mode needs a job name and price",
			setup: func(s *state.State) {
				s.PriceMode = state.PriceModeCustom
				s.PackageID = ""
			},
			wantFields: []string{"job_name", "custom_price"},
		},
		{
			name: "custom price cannot be negative",
			setup: func(s *state.State) {
				s.PriceMode = state.PriceModeCustom
				s.PackageID = ""
				s.JobName = "Deep clean"
				s.CustomPrice = floatPtr(-1)
			},
			wantFields: []string{"custom_price"},
		},
		{
			name: "override without a package",
			setup: func(s *state.State) {
				s.PriceMode = state.PriceModeOverride
				s.PackageID = ""
			},
			wantFields: []string{"package_id"},
		},
		{
			name: "override price cannot be negative",
			setup: func(s *state.State) {
				s.PriceMode = state.PriceModeOverride
				s.TotalPrice = floatPtr(-50)
			},
			wantFields: []string{"total_price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.setup(&s)

			errs := state.ValidateStep(s, state.StepService)

			assert.Len(t, errs, len(tt.wantFields))

			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateStep_Assignment(t *testing.T) {
	t.Run("address and city are required", func(t *testing.T) {
		errs := state.ValidateStep(state.New(), state.StepAssignment)

		assert.Contains(t, errs, "address")
		assert.Contains(t, errs, "city")
	})

	t.Run("staff and team cannot both be set", func(t *testing.T) {
		s := state.New()
		s.Address = "1 Main St"
		s.City = "Bangkok"
		s.StaffID = "staff-id"
		s.TeamID = "team-id"

		errs := state.ValidateStep(s, state.StepAssignment)

		assert.Contains(t, errs, "assignment")
	})

	t.Run("a single assignee passes", func(t *testing.T) {
		s := state.New()
		s.Address = "1 Main St"
		s.City = "Bangkok"
		s.TeamID = "team-id"

		assert.Empty(t, state.ValidateStep(s, state.StepAssignment))
	})
}

func TestValidateFull(t *testing.T) {
	t.Run("unions every step", func(t *testing.T) {
		errs := state.ValidateFull(state.New())

		assert.Contains(t, errs, "customer_name")
		assert.Contains(t, errs, "booking_date")
		assert.Contains(t, errs, "address")
	})

	t.Run("complete draft passes", func(t *testing.T) {
		assert.Empty(t, state.ValidateFull(completeDraft()))
	})
}
