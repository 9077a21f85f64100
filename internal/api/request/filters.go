package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
)

// ViewFilters selects and orders the investment views of a portfolio request.
type ViewFilters struct {
	Tag  string
	Sort portfolio.SortKey
}

// ParseViewFilters extracts the tag filter and sort key from query parameters.
//
// Validation rules:
//   - tag: free text, surrounding spaces removed; empty means portfolio.FilterAll
//   - sort: one of none, return, value, category, roi; empty means none
//
// Returns an error wrapping apperrors.ErrInvalidSortKey for an unknown sort key.
func ParseViewFilters(tagParam, sortParam string) (ViewFilters, error) {
	filters := ViewFilters{Tag: strings.TrimSpace(tagParam)}
	if filters.Tag == "" {
		filters.Tag = portfolio.FilterAll
	}

	sortKey, err := portfolio.ParseSortKey(strings.ToLower(strings.TrimSpace(sortParam)))
	if err != nil {
		return ViewFilters{}, err
	}
	filters.Sort = sortKey

	return filters, nil
}

// HistoryFilters bounds a snapshot history request. Both dates are inclusive.
type HistoryFilters struct {
	StartDate time.Time
	EndDate   time.Time
}

// ParseHistoryFilters extracts the date range of a history request.
// A missing start_date defaults to the Unix epoch and a missing end_date to now.
// Dates may be YYYY-MM-DD or RFC3339. The range order is checked by the caller.
func ParseHistoryFilters(startDateParam, endDateParam string, now time.Time) (HistoryFilters, error) {
	filters := HistoryFilters{
		StartDate: time.Unix(0, 0).UTC(),
		EndDate:   now.UTC(),
	}

	if startDateParam != "" {
		startTime, err := parseFilterTime(startDateParam)
		if err != nil {
			return HistoryFilters{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		filters.StartDate = startTime
	}

	if endDateParam != "" {
		endTime, err := parseFilterTime(endDateParam)
		if err != nil {
			return HistoryFilters{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		filters.EndDate = endTime
	}

	return filters, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
