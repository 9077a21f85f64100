// Package valuation computes the invested total and present value of a single
// investment, including its recurring contributions.
//
// Every contribution (the initial principal and each recurring payment) is
// compounded independently from its own date to the reference instant at the
// investment's fixed annual rate. The package holds no state: Evaluate is a
// pure function of the record and the reference time.
package valuation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// MaxRecurringContributions bounds the number of recurring contributions generated
// for a single investment. Reaching the cap stops generation early and the partial
// result is returned.
const MaxRecurringContributions = 5000

// Result holds the valuation of one investment at a reference instant.
// All values are rounded to two decimal places.
type Result struct {
	InvestedTotal float64 // Principal plus all recurring contributions made up to now
	CurrentValue  float64 // Manual override when set, otherwise ComputedValue
	ComputedValue float64 // Sum of compounded contribution values, ignoring any override
}

// accumulator sums contributions and their compounded values.
type accumulator struct {
	now      time.Time
	growth   float64 // 1 + annual rate as a fraction
	invested float64
	value    float64
}

// contribute adds amount made on date. A nil date means the contribution happens
// at the reference instant and does not grow. Future dates are clamped to zero
// elapsed time so a contribution never shrinks below face value.
func (a *accumulator) contribute(amount float64, date *time.Time) {
	a.invested += amount
	if date == nil {
		a.value += amount
		return
	}
	years := math.Max(0, YearsBetween(*date, a.now))
	a.value += amount * math.Pow(a.growth, years)
}

// Evaluate values rec at the reference instant now.
//
// The initial principal is contributed on the start date (or at now when the
// record has no start date). Recurring contributions are generated only when a
// start date exists:
//   - monthly: RecurringAmount on the same day of each following month
//   - yearly: InvestedPrincipal on each anniversary
//   - custom: InvestedPrincipal every RecurringIntervalMonths months
//
// Generation stops at the first date after now, or after MaxRecurringContributions
// contributions. A positive ManualCurrentValue replaces the computed value in
// CurrentValue. Malformed numeric fields (negative, NaN, infinite) are treated as zero.
func Evaluate(rec model.Investment, now time.Time) Result {
	now = now.UTC()

	principal := money(rec.InvestedPrincipal)
	sip := money(rec.RecurringAmount)
	manual := money(rec.ManualCurrentValue)
	rate := finite(rec.AnnualRatePercent) / 100
	interval := max(rec.RecurringIntervalMonths, 0)

	acc := &accumulator{
		now: now,
		// A rate below -100% would make the base negative and the fractional power
		// undefined; the contribution is then worth nothing once any time elapses.
		growth: math.Max(0, 1+rate),
	}

	var start *time.Time
	if rec.StartDate != nil {
		s := rec.StartDate.UTC()
		start = &s
	}

	if start != nil {
		acc.contribute(principal, start)
	} else {
		acc.contribute(principal, &now)
	}

	if start != nil {
		switch rec.RecurringType {
		case model.RecurringMonthly:
			if sip > 0 {
				totalMonths := MonthsBetween(*start, now)
				recur(acc, totalMonths, sip, func(m int) time.Time { return AddMonths(*start, m) })
			}
		case model.RecurringYearly:
			if principal > 0 {
				totalYears := int(math.Floor(YearsBetween(*start, now)))
				recur(acc, totalYears, principal, func(y int) time.Time { return AddYears(*start, y) })
			}
		case model.RecurringCustom:
			if interval > 0 && principal > 0 {
				periods := MonthsBetween(*start, now) / interval
				recur(acc, periods, principal, func(p int) time.Time { return AddMonths(*start, p*interval) })
			}
		}
	}

	computed := round(acc.value)
	current := computed
	if manual > 0 {
		current = round(manual)
	}

	return Result{
		InvestedTotal: round(acc.invested),
		CurrentValue:  current,
		ComputedValue: computed,
	}
}

// EvaluateNow values rec at the current wall-clock time.
func EvaluateNow(rec model.Investment) Result {
	return Evaluate(rec, time.Now())
}

// recur contributes amount for occurrences 1..count, with the date of occurrence
// n given by dateOf. It stops at the first date after the reference instant or
// when MaxRecurringContributions is reached.
func recur(acc *accumulator, count int, amount float64, dateOf func(n int) time.Time) {
	count = min(count, MaxRecurringContributions)
	for n := 1; n <= count; n++ {
		date := dateOf(n)
		if date.After(acc.now) {
			break
		}
		acc.contribute(amount, &date)
	}
}

// finite returns v, or 0 when v is NaN or infinite.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// money coerces a monetary amount to a finite, non-negative value.
func money(v float64) float64 {
	return math.Max(0, finite(v))
}

// round rounds to two decimal places, half away from zero.
// Values that overflowed to infinity are reported as zero.
func round(v float64) float64 {
	v = finite(v)
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
