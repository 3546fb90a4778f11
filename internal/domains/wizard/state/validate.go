package state

// ValidateStep checks one step's fields and returns field-name keyed
// error messages. An empty map means the step is complete.
func ValidateStep(s State, step int) map[string]string {
	errs := map[string]string{}

	switch step {
	case StepCustomer:
		if s.CustomerID == "" && (s.NewCustomerName == "" || s.NewCustomerPhone == "") {
			if s.NewCustomerName == "" {
				errs["customer_name"] = "Select a customer or enter a name"
			}

			if s.NewCustomerPhone == "" {
				errs["customer_phone"] = "Select a customer or enter a phone number"
			}
		}

	case StepService:
		if s.BookingDate == "" {
			errs["booking_date"] = "Booking date is required"
		}

		if s.StartTime == "" {
			errs["start_time"] = "Start time is required"
		}

		if s.MultiDay && s.EndDate == "" {
			errs["end_date"] = "End date is required for multi-day bookings"
		}

		if s.IsRecurring && s.RecurrenceCount < 2 {
			errs["recurrence_count"] = "Recurring bookings need at least two visits"
		}

		switch s.PriceMode {
		case PriceModeCustom:
			if s.JobName == "" {
				errs["job_name"] = "Job name is required for custom pricing"
			}

			if s.CustomPrice == nil {
				errs["custom_price"] = "Price is required for custom pricing"
			} else if *s.CustomPrice < 0 {
				errs["custom_price"] = "Price cannot be negative"
			}

		case PriceModeOverride:
			if s.PackageID == "" {
				errs["package_id"] = "Select a package before overriding its price"
			}

			if s.TotalPrice == nil {
				errs["total_price"] = "Override price is required"
			} else if *s.TotalPrice < 0 {
				errs["total_price"] = "Override price cannot be negative"
			}

		case PriceModePackage:
			if s.PackageID == "" {
				errs["package_id"] = "Select a package"
			}
		}

	case StepAssignment:
		if s.Address == "" {
			errs["address"] = "Address is required"
		}

		if s.City == "" {
			errs["city"] = "City is required"
		}

		if s.StaffID != "" && s.TeamID != "" {
			errs["assignment"] = "Assign either a staff member or a team, not both"
		}
	}

	return errs
}

// ValidateFull is the union of every step's validation. Submission is
// gated on this, never on per-step flags, so stale step validation
// after backward navigation cannot let an invalid draft through.
func ValidateFull(s State) map[string]string {
	errs := map[string]string{}

	for step := StepCustomer; step <= StepAssignment; step++ {
		for field, msg := range ValidateStep(s, step) {
			errs[field] = msg
		}
	}

	return errs
}
