package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// ReferenceTime is the fixed "now" used by services created in tests.
var ReferenceTime = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) service.Clock {
	return func() time.Time { return t }
}

// NewTestInvestmentService creates an InvestmentService on db whose clock is fixed at ReferenceTime.
func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	return service.NewInvestmentService(
		db,
		repository.NewInvestmentRepository(db),
		FixedClock(ReferenceTime),
	)
}

// NewTestExportService creates an ExportService backed by NewTestInvestmentService.
func NewTestExportService(t *testing.T, db *sql.DB) *service.ExportService {
	t.Helper()

	return service.NewExportService(NewTestInvestmentService(t, db), "mycapital360_portfolio.csv")
}

// NewTestChartService creates a ChartService labelling amounts in INR.
func NewTestChartService(t *testing.T, db *sql.DB) *service.ChartService {
	t.Helper()

	return service.NewChartService(NewTestInvestmentService(t, db), "INR")
}

// NewTestSnapshotService creates a SnapshotService backed by NewTestInvestmentService.
func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		NewTestInvestmentService(t, db),
		repository.NewSnapshotRepository(db),
	)
}

// NewTestSystemService creates a SystemService with the snapshots feature enabled.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"snapshots": true})
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MakeID generates a new UUID string for testing.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeInvestmentName generates a unique investment name for testing.
//
// Example usage:
//
//	name := testutil.MakeInvestmentName("Gold")
//	// Returns: "Gold ABC123"
func MakeInvestmentName(base string) string {
	if base == "" {
		base = "Investment"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
