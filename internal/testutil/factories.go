package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// InvestmentBuilder provides a fluent interface for creating test investments.
// Built investments are placed in front of the existing ones, like new entries.
//
// Example usage:
//
//	// Simple creation with defaults
//	inv := testutil.NewInvestment().Build(t, db)
//
//	// Customized investment
//	inv := testutil.NewInvestment().
//	    WithName("ICICI Bank FD").
//	    WithCategory("FD").
//	    WithInvested(200000).
//	    WithStartDate(time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type InvestmentBuilder struct {
	inv model.Investment
}

// NewInvestment creates an InvestmentBuilder with sensible defaults: a one-time
// investment of 1000 with no start date and no rate.
func NewInvestment() *InvestmentBuilder {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &InvestmentBuilder{inv: model.Investment{
		ID:                MakeID(),
		Name:              MakeInvestmentName("Test Investment"),
		Category:          "Others",
		InvestedPrincipal: 1000,
		RecurringType:     model.RecurringNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.inv.ID = id
	return b
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.inv.Name = name
	return b
}

// WithCategory sets the category.
func (b *InvestmentBuilder) WithCategory(category string) *InvestmentBuilder {
	b.inv.Category = category
	return b
}

// WithTag sets the tag.
func (b *InvestmentBuilder) WithTag(tag string) *InvestmentBuilder {
	b.inv.Tag = tag
	return b
}

// WithInvested sets the initial principal.
func (b *InvestmentBuilder) WithInvested(amount float64) *InvestmentBuilder {
	b.inv.InvestedPrincipal = amount
	return b
}

// WithCurrent sets the manual current value override.
func (b *InvestmentBuilder) WithCurrent(amount float64) *InvestmentBuilder {
	b.inv.ManualCurrentValue = amount
	return b
}

// WithStartDate sets the start date.
func (b *InvestmentBuilder) WithStartDate(date time.Time) *InvestmentBuilder {
	b.inv.StartDate = &date
	return b
}

// WithRate sets the annual rate in percent.
func (b *InvestmentBuilder) WithRate(percent float64) *InvestmentBuilder {
	b.inv.AnnualRatePercent = percent
	return b
}

// Monthly makes the investment a monthly SIP of amount.
func (b *InvestmentBuilder) Monthly(amount float64) *InvestmentBuilder {
	b.inv.RecurringType = model.RecurringMonthly
	b.inv.RecurringAmount = amount
	return b
}

// Yearly makes the principal recur every year.
func (b *InvestmentBuilder) Yearly() *InvestmentBuilder {
	b.inv.RecurringType = model.RecurringYearly
	return b
}

// Custom makes the principal recur every interval months.
func (b *InvestmentBuilder) Custom(interval int) *InvestmentBuilder {
	b.inv.RecurringType = model.RecurringCustom
	b.inv.RecurringIntervalMonths = interval
	return b
}

// WithNotes sets the notes.
func (b *InvestmentBuilder) WithNotes(notes string) *InvestmentBuilder {
	b.inv.Notes = notes
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	query := `
		INSERT INTO investment (
			id, name, category, invested, current_value, start_date, roi,
			recurring_type, sip, recurring_interval, tag, notes,
			position, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MIN(position), 0) - 1 FROM investment), ?, ?)
	`

	var startDate any
	if b.inv.StartDate != nil {
		startDate = b.inv.StartDate.Format(model.DateLayout)
	}

	_, err := db.Exec(query,
		b.inv.ID,
		b.inv.Name,
		b.inv.Category,
		b.inv.InvestedPrincipal,
		b.inv.ManualCurrentValue,
		startDate,
		b.inv.AnnualRatePercent,
		string(b.inv.RecurringType),
		b.inv.RecurringAmount,
		b.inv.RecurringIntervalMonths,
		b.inv.Tag,
		b.inv.Notes,
		b.inv.CreatedAt.Format(time.RFC3339Nano),
		b.inv.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return b.inv
}

// Convenience functions

// CreateInvestment creates an investment with the given name and default values.
//
// Example usage:
//
//	inv := testutil.CreateInvestment(t, db, "HDFC Long Term")
func CreateInvestment(t *testing.T, db *sql.DB, name string) model.Investment {
	t.Helper()
	return NewInvestment().WithName(name).Build(t, db)
}

// InsertRawInvestment stores a row with arbitrary column values, bypassing
// any type handling. Use it to simulate malformed stored data.
//
// Example usage:
//
//	id := testutil.InsertRawInvestment(t, db, map[string]any{"invested": "abc"})
func InsertRawInvestment(t *testing.T, db *sql.DB, columns map[string]any) string {
	t.Helper()

	id := MakeID()
	values := map[string]any{
		"name":               "Raw Investment",
		"category":           "Others",
		"invested":           0,
		"current_value":      0,
		"start_date":         nil,
		"roi":                0,
		"recurring_type":     "none",
		"sip":                0,
		"recurring_interval": 0,
		"tag":                "",
		"notes":              "",
	}
	for k, v := range columns {
		values[k] = v
	}

	_, err := db.Exec(`
		INSERT INTO investment (
			id, name, category, invested, current_value, start_date, roi,
			recurring_type, sip, recurring_interval, tag, notes, position, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MIN(position), 0) - 1 FROM investment), ?, ?)`,
		id,
		values["name"],
		values["category"],
		values["invested"],
		values["current_value"],
		values["start_date"],
		values["roi"],
		values["recurring_type"],
		values["sip"],
		values["recurring_interval"],
		values["tag"],
		values["notes"],
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00Z",
	)
	if err != nil {
		t.Fatalf("Failed to insert raw investment: %v", err)
	}

	return id
}

// SnapshotBuilder provides a fluent interface for creating test snapshots.
type SnapshotBuilder struct {
	snapshot model.Snapshot
}

// NewSnapshot creates a SnapshotBuilder for the given date.
func NewSnapshot(date time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{snapshot: model.Snapshot{
		ID:        MakeID(),
		Date:      date,
		Invested:  1000,
		Current:   1100,
		Profit:    100,
		Count:     1,
		CreatedAt: date,
	}}
}

// WithTotals sets invested and current, deriving profit.
func (b *SnapshotBuilder) WithTotals(invested, current float64) *SnapshotBuilder {
	b.snapshot.Invested = invested
	b.snapshot.Current = current
	b.snapshot.Profit = current - invested
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.Snapshot {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO portfolio_snapshot (id, date, invested, current_value, profit, investment_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.snapshot.ID,
		b.snapshot.Date.Format(model.DateLayout),
		b.snapshot.Invested,
		b.snapshot.Current,
		b.snapshot.Profit,
		b.snapshot.Count,
		b.snapshot.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	return b.snapshot
}
