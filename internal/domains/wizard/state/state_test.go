package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sparkle/internal/domains/wizard/state"
)

func floatPtr(f float64) *float64 {
	return &f
}

func completeDraft() state.State {
	s := state.New()
	s.CustomerID = "customer-id"
	s.PackageID = "package-id"
	s.BookingDate = "2026-09-01"
	s.StartTime = "09:00"
	s.Address = "1 Main St"
	s.City = "Bangkok"

	return s
}

func TestNew(t *testing.T) {
	s := state.New()

	assert.Equal(t, state.StepCustomer, s.Step)
	assert.Equal(t, state.PriceModePackage, s.PriceMode)

	if assert.NotNil(t, s.TotalPrice) {
		assert.Equal(t, 0.0, *s.TotalPrice)
	}
}

func TestApply_StepNavigation(t *testing.T) {
	t.Run("next step blocked by incomplete customer step", func(t *testing.T) {
		s := state.Apply(state.New(), state.Action{Type: state.ActionNextStep})

		assert.Equal(t, state.StepCustomer, s.Step)
		assert.NotEmpty(t, s.ValidationErrors)
	})

	t.Run("next step advances when the step validates", func(t *testing.T) {
		s := state.New()
		s.CustomerID = "customer-id"

		s = state.Apply(s, state.Action{Type: state.ActionNextStep})

		assert.Equal(t, state.StepService, s.Step)
		assert.Empty(t, s.ValidationErrors)
	})

	t.Run("next step never passes review", func(t *testing.T) {
		s := completeDraft()
		s.Step = state.StepReview

		s = state.Apply(s, state.Action{Type: state.ActionNextStep})

		assert.Equal(t, state.StepReview, s.Step)
	})

	t.Run("prev step stops at the first step", func(t *testing.T) {
		s := state.Apply(state.New(), state.Action{Type: state.ActionPrevStep})

		assert.Equal(t, state.StepCustomer, s.Step)
	})

	t.Run("goto jumps backward", func(t *testing.T) {
		s := completeDraft()
		s.Step = state.StepReview

		s = state.Apply(s, state.Action{Type: state.ActionGotoStep, Step: state.StepService})

		assert.Equal(t, state.StepService, s.Step)
	})

	t.Run("goto never jumps forward", func(t *testing.T) {
		s := state.New()

		s = state.Apply(s, state.Action{Type: state.ActionGotoStep, Step: state.StepReview})

		assert.Equal(t, state.StepCustomer, s.Step)
	})

	t.Run("validation errors clear on the next action", func(t *testing.T) {
		s := state.Apply(state.New(), state.Action{Type: state.ActionNextStep})
		assert.NotEmpty(t, s.ValidationErrors)

		s = state.Apply(s, state.Action{Type: state.ActionSetNotes, Value: "note"})

		assert.Empty(t, s.ValidationErrors)
	})
}

func TestApply_CustomerSelection(t *testing.T) {
	t.Run("selecting a customer with an address copies it", func(t *testing.T) {
		s := state.New()
		s.NewCustomerName = "Walk In"
		s.NewCustomerPhone = "0812345678"

		s = state.Apply(s, state.Action{
			Type: state.ActionSelectCustomer,
			Customer: &state.CustomerInfo{
				ID:      "customer-id",
				Name:    "Jane",
				Address: "1 Main St",
				City:    "Bangkok",
				State:   "Bangkok",
				ZipCode: "10110",
			},
		})

		assert.Equal(t, "customer-id", s.CustomerID)
		assert.Empty(t, s.NewCustomerName)
		assert.Empty(t, s.NewCustomerPhone)
		assert.True(t, s.UseCustomerAddress)
		assert.Equal(t, "1 Main St", s.Address)
		assert.Equal(t, "Bangkok", s.City)
	})

	t.Run("selecting a customer without an address leaves the address alone", func(t *testing.T) {
		s := state.New()
		s.Address = "typed address"

		s = state.Apply(s, state.Action{
			Type:     state.ActionSelectCustomer,
			Customer: &state.CustomerInfo{ID: "customer-id"},
		})

		assert.False(t, s.UseCustomerAddress)
		assert.Equal(t, "typed address", s.Address)
	})

	t.Run("entering a new customer clears the selection", func(t *testing.T) {
		s := state.New()
		s.CustomerID = "customer-id"
		s.UseCustomerAddress = true

		s = state.Apply(s, state.Action{
			Type:  state.ActionSetNewCustomer,
			Name:  "Walk In",
			Phone: "0812345678",
		})

		assert.Empty(t, s.CustomerID)
		assert.False(t, s.UseCustomerAddress)
		assert.Equal(t, "Walk In", s.NewCustomerName)
		assert.Equal(t, "0812345678", s.NewCustomerPhone)
	})

	t.Run("toggling the customer address off clears the copied fields", func(t *testing.T) {
		s := state.New()
		s.UseCustomerAddress = true
		s.Address = "1 Main St"
		s.City = "Bangkok"
		s.State = "Bangkok"
		s.ZipCode = "10110"

		s = state.Apply(s, state.Action{Type: state.ActionToggleCustomerAddress, Enabled: false})

		assert.False(t, s.UseCustomerAddress)
		assert.Empty(t, s.Address)
		assert.Empty(t, s.City)
		assert.Empty(t, s.State)
		assert.Empty(t, s.ZipCode)
	})

	t.Run("typing an address turns the customer address off", func(t *testing.T) {
		s := state.New()
		s.UseCustomerAddress = true

		s = state.Apply(s, state.Action{
			Type:    state.ActionSetAddress,
			Address: "2 Side St",
			City:    "Chiang Mai",
		})

		assert.False(t, s.UseCustomerAddress)
		assert.Equal(t, "2 Side St", s.Address)
		assert.Equal(t, "Chiang Mai", s.City)
	})
}

func TestApply_PriceModes(t *testing.T) {
	t.Run("custom mode drops the package and its price", func(t *testing.T) {
		s := state.New()
		s.PackageID = "package-id"
		s.PackageDuration = 120
		s.TotalPrice = floatPtr(1500)

		s = state.Apply(s, state.Action{Type: state.ActionSetPriceMode, Mode: state.PriceModeCustom})

		assert.Equal(t, state.PriceModeCustom, s.PriceMode)
		assert.Empty(t, s.PackageID)
		assert.Zero(t, s.PackageDuration)
		assert.Nil(t, s.TotalPrice)
	})

	t.Run("package mode resets the custom fields", func(t *testing.T) {
		s := state.New()
		s.PriceMode = state.PriceModeCustom
		s.CustomPrice = floatPtr(900)
		s.JobName = "Deep clean"
		s.TotalPrice = nil

		s = state.Apply(s, state.Action{Type: state.ActionSetPriceMode, Mode: state.PriceModePackage})

		assert.Equal(t, state.PriceModePackage, s.PriceMode)
		assert.Nil(t, s.CustomPrice)
		assert.Empty(t, s.JobName)

		if assert.NotNil(t, s.TotalPrice) {
			assert.Equal(t, 0.0, *s.TotalPrice)
		}
	})

	t.Run("override mode keeps the current total", func(t *testing.T) {
		s := state.New()
		s.PackageID = "package-id"
		s.TotalPrice = floatPtr(1500)

		s = state.Apply(s, state.Action{Type: state.ActionSetPriceMode, Mode: state.PriceModeOverride})

		assert.Equal(t, state.PriceModeOverride, s.PriceMode)
		assert.Equal(t, "package-id", s.PackageID)

		if assert.NotNil(t, s.TotalPrice) {
			assert.Equal(t, 1500.0, *s.TotalPrice)
		}
	})

	t.Run("unknown mode is ignored", func(t *testing.T) {
		s := state.New()

		s = state.Apply(s, state.Action{Type: state.ActionSetPriceMode, Mode: "flat"})

		assert.Equal(t, state.PriceModePackage, s.PriceMode)
	})
}

func TestApply_PackageAndSchedule(t *testing.T) {
	t.Run("selecting a package sets price and derives the end time", func(t *testing.T) {
		s := state.New()
		s.StartTime = "09:00"

		s = state.Apply(s, state.Action{
			Type:    state.ActionSelectPackage,
			Package: &state.PackageInfo{ID: "package-id", Price: 1500, DurationMinutes: 90},
		})

		assert.Equal(t, "package-id", s.PackageID)
		assert.Equal(t, 90, s.PackageDuration)
		assert.Equal(t, "10:30", s.EndTime)

		if assert.NotNil(t, s.TotalPrice) {
			assert.Equal(t, 1500.0, *s.TotalPrice)
		}
	})

	t.Run("a manually set end time survives package selection", func(t *testing.T) {
		s := state.New()
		s.StartTime = "09:00"

		s = state.Apply(s, state.Action{Type: state.ActionSetEndTime, Value: "13:00", Manual: true})
		s = state.Apply(s, state.Action{
			Type:    state.ActionSelectPackage,
			Package: &state.PackageInfo{ID: "package-id", Price: 1500, DurationMinutes: 90},
		})

		assert.True(t, s.EndTimeManuallySet)
		assert.Equal(t, "13:00", s.EndTime)
	})

	t.Run("moving the start time shifts a derived end time", func(t *testing.T) {
		s := state.New()
		s.StartTime = "09:00"

		s = state.Apply(s, state.Action{
			Type:    state.ActionSelectPackage,
			Package: &state.PackageInfo{ID: "package-id", Price: 1500, DurationMinutes: 60},
		})
		s = state.Apply(s, state.Action{Type: state.ActionSetStartTime, Value: "14:00"})

		assert.Equal(t, "15:00", s.EndTime)
	})

	t.Run("moving the start time leaves a manual end time alone", func(t *testing.T) {
		s := state.New()
		s.PackageDuration = 60

		s = state.Apply(s, state.Action{Type: state.ActionSetEndTime, Value: "17:00", Manual: true})
		s = state.Apply(s, state.Action{Type: state.ActionSetStartTime, Value: "14:00"})

		assert.Equal(t, "17:00", s.EndTime)
	})
}

func TestApply_RecurrenceToggles(t *testing.T) {
	t.Run("multi-day turns recurring off", func(t *testing.T) {
		s := state.New()
		s.IsRecurring = true
		s.RecurrenceCount = 4

		s = state.Apply(s, state.Action{Type: state.ActionToggleMultiDay, Enabled: true})

		assert.True(t, s.MultiDay)
		assert.False(t, s.IsRecurring)
		assert.Zero(t, s.RecurrenceCount)
	})

	t.Run("recurring turns multi-day off and drops the end date", func(t *testing.T) {
		s := state.New()
		s.MultiDay = true
		s.EndDate = "2026-09-03"

		s = state.Apply(s, state.Action{Type: state.ActionToggleRecurring, Enabled: true, Count: 4})

		assert.True(t, s.IsRecurring)
		assert.False(t, s.MultiDay)
		assert.Empty(t, s.EndDate)
		assert.Equal(t, 4, s.RecurrenceCount)
	})

	t.Run("disabling multi-day drops the end date", func(t *testing.T) {
		s := state.New()
		s.MultiDay = true
		s.EndDate = "2026-09-03"

		s = state.Apply(s, state.Action{Type: state.ActionToggleMultiDay, Enabled: false})

		assert.False(t, s.MultiDay)
		assert.Empty(t, s.EndDate)
	})

	t.Run("disabling recurring resets the count", func(t *testing.T) {
		s := state.New()
		s.IsRecurring = true
		s.RecurrenceCount = 4

		s = state.Apply(s, state.Action{Type: state.ActionToggleRecurring, Enabled: false})

		assert.False(t, s.IsRecurring)
		assert.Zero(t, s.RecurrenceCount)
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	original := state.New()
	original.CustomerID = "customer-id"

	_ = state.Apply(original, state.Action{Type: state.ActionSetNotes, Value: "changed"})

	assert.Empty(t, original.Notes)
	assert.Equal(t, "customer-id", original.CustomerID)
}
