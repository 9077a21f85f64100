package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrSnapshotNotFound indicates that no snapshot exists for the requested date.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrNoAllocationData indicates that no category holds a positive value,
	// so there is nothing to chart.
	ErrNoAllocationData = errors.New("no allocation data")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidSortKey indicates an unknown portfolio sort key.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidChartFormat indicates an unsupported chart output format.
	ErrInvalidChartFormat = errors.New("invalid chart format")

	// ErrInvalidImport indicates that an import payload could not be decoded.
	ErrInvalidImport = errors.New("invalid import payload")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment  = errors.New("failed to retrieve investment")
	ErrFailedToGetPortfolio        = errors.New("failed to get portfolio")
	ErrFailedToGetPortfolioHistory = errors.New("failed to get portfolio history")
	ErrFailedToCaptureSnapshot     = errors.New("failed to capture snapshot")
	ErrFailedToExport              = errors.New("failed to export portfolio")
	ErrFailedToRenderChart         = errors.New("failed to render allocation chart")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
)
