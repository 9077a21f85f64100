package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateDateRange checks that start is not after end.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}
