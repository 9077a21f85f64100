package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// Stored rows may hold values of the wrong type (SQLite does not enforce column
// types, and imported data comes from a loosely typed source). Every column is
// therefore scanned as nullable text and coerced on its own, so one malformed
// field never prevents the rest of the row from loading.

// coerceFloat returns the numeric value of s, or 0 when s is NULL, not a number,
// not finite, or negative.
func coerceFloat(s sql.NullString) float64 {
	return CoerceAmount(s.String)
}

// coerceRate is coerceFloat without the non-negative constraint.
func coerceRate(s sql.NullString) float64 {
	return CoerceNumber(s.String)
}

// coerceInt returns the integer value of s, truncating decimals, or 0.
func coerceInt(s sql.NullString) int {
	v := CoerceNumber(s.String)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

// coerceDate returns the parsed date of s, or nil when s is NULL or malformed.
func coerceDate(s sql.NullString) *time.Time {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return nil
	}
	t, err := ParseTime(strings.TrimSpace(s.String))
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// coerceTimestamp returns the parsed timestamp of s, or the zero time.
func coerceTimestamp(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// CoerceNumber parses s as a finite number, returning 0 on failure.
func CoerceNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CoerceAmount parses s as a monetary amount: finite and non-negative, 0 otherwise.
func CoerceAmount(s string) float64 {
	return math.Max(0, CoerceNumber(s))
}

// formatDate renders an optional date for storage.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02")
}

// formatTimestamp renders a timestamp for storage.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
