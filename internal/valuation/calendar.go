package valuation

import "time"

// msPerYear is the fixed day-count convention used for compounding: 365.25 days per year.
const msPerYear = 365.25 * 24 * 60 * 60 * 1000

// MonthsBetween returns the number of calendar months between start and end,
// computed from year and month only. The day of month is ignored, so
// 2023-01-31 to 2023-02-01 counts as one month.
func MonthsBetween(start, end time.Time) int {
	start, end = start.UTC(), end.UTC()
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// YearsBetween returns the elapsed time from start to end in fractional years.
// The difference is taken in milliseconds, which keeps very old dates from
// overflowing time.Duration. The result is negative when end is before start.
func YearsBetween(start, end time.Time) float64 {
	return float64(end.UnixMilli()-start.UnixMilli()) / msPerYear
}

// AddMonths advances t by n calendar months keeping the day of month.
//
// Overflowing days roll into the following month the way time.Date normalizes
// them: 2023-01-31 plus one month is 2023-03-03, and 2024-01-31 plus one month
// is 2024-03-02.
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+time.Month(n), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// AddYears advances t by n calendar years keeping month and day.
// February 29 rolls to March 1 in non-leap years.
func AddYears(t time.Time, n int) time.Time {
	t = t.UTC()
	return time.Date(t.Year()+n, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
