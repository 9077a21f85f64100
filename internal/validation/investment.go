package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
)

// ValidRecurringType contains the allowed recurringType values. The empty string means none.
var ValidRecurringType = map[string]bool{
	"": true, "none": true, "monthly": true, "yearly": true, "custom": true,
}

const (
	maxNameLength  = 255
	maxNotesLength = 2000
)

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - name: non-empty, at most 255 characters
//
// Optional fields (validated if provided):
//   - id: must be a valid UUID
//   - date: must be in YYYY-MM-DD format
//   - recurringType: must be one of none, monthly, yearly, custom
//   - notes: at most 2000 characters
//
// Negative amounts are not rejected here; the service coerces them to zero.
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.ID != "" {
		if err := ValidateUUID(req.ID); err != nil {
			errors["id"] = err.Error()
		}
	}

	validateName(errors, req.Name)
	validateDate(errors, req.Date)
	validateRecurringType(errors, req.RecurringType)
	validateNotes(errors, req.Notes)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestment validates a partial investment update.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		validateName(errors, *req.Name)
	}
	if req.Date != nil {
		validateDate(errors, *req.Date)
	}
	if req.RecurringType != nil {
		validateRecurringType(errors, *req.RecurringType)
	}
	if req.Notes != nil {
		validateNotes(errors, *req.Notes)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateName(errors map[string]string, name string) {
	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if len(name) > maxNameLength {
		errors["name"] = fmt.Sprintf("name must be %d characters or less", maxNameLength)
	}
}

// validateDate accepts an empty date, which means the start date is unknown.
func validateDate(errors map[string]string, date string) {
	if strings.TrimSpace(date) == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}
}

func validateRecurringType(errors map[string]string, recurringType string) {
	if !ValidRecurringType[recurringType] {
		errors["recurringType"] = fmt.Sprintf("invalid recurringType: %s", recurringType)
	}
}

func validateNotes(errors map[string]string, notes string) {
	if len(notes) > maxNotesLength {
		errors["notes"] = fmt.Sprintf("notes must be %d characters or less", maxNotesLength)
	}
}
