package valuation_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d := date(t, s)
	return &d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func TestEvaluate_OneTimeInvestment(t *testing.T) {
	t.Run("one year of compounding at 10%", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 100000,
			StartDate:         datePtr(t, "2023-04-10"),
			AnnualRatePercent: 10,
			RecurringType:     model.RecurringNone,
		}
		now := date(t, "2024-04-10")

		res := valuation.Evaluate(rec, now)

		assert.Equal(t, 100000.0, res.InvestedTotal)
		// 2024 is a leap year so the span is 366 days, slightly over one 365.25-day year.
		assert.InDelta(t, 110000.0, res.CurrentValue, 25)
		assert.InDelta(t, round2(100000*math.Pow(1.1, 366/365.25)), res.CurrentValue, 0.011)
	})

	t.Run("current value follows the compounding formula", func(t *testing.T) {
		start := date(t, "2019-02-17")
		for _, tc := range []struct {
			principal float64
			rate      float64
			now       string
		}{
			{principal: 1000, rate: 7.5, now: "2020-02-17"},
			{principal: 250000, rate: 4.5, now: "2024-11-03"},
			{principal: 12.34, rate: 12, now: "2019-08-01"},
			{principal: 5000, rate: -3, now: "2022-01-01"},
		} {
			now := date(t, tc.now)
			rec := model.Investment{
				InvestedPrincipal: tc.principal,
				StartDate:         &start,
				AnnualRatePercent: tc.rate,
			}

			res := valuation.Evaluate(rec, now)

			years := now.Sub(start).Hours() / 24 / 365.25
			expected := round2(tc.principal * math.Pow(1+tc.rate/100, years))
			assert.InDelta(t, expected, res.CurrentValue, 0.011, "principal %v rate %v", tc.principal, tc.rate)
			assert.Equal(t, tc.principal, res.InvestedTotal)
		}
	})

	t.Run("no start date means no growth and no recurring contributions", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 1000,
			AnnualRatePercent: 10,
			RecurringType:     model.RecurringMonthly,
			RecurringAmount:   500,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 1000.0, res.InvestedTotal)
		assert.Equal(t, 1000.0, res.CurrentValue)
	})

	t.Run("future start date is valued at face value", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 1000,
			StartDate:         datePtr(t, "2030-01-01"),
			AnnualRatePercent: 10,
			RecurringType:     model.RecurringMonthly,
			RecurringAmount:   100,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 1000.0, res.InvestedTotal)
		assert.Equal(t, 1000.0, res.CurrentValue)
	})

	t.Run("zero principal without recurring yields zero", func(t *testing.T) {
		rec := model.Investment{StartDate: datePtr(t, "2020-01-01"), AnnualRatePercent: 8}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Zero(t, res.InvestedTotal)
		assert.Zero(t, res.CurrentValue)
	})
}

func TestEvaluate_Monthly(t *testing.T) {
	t.Run("three monthly contributions at 0%", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 0,
			RecurringAmount:   5000,
			StartDate:         datePtr(t, "2023-01-01"),
			RecurringType:     model.RecurringMonthly,
			AnnualRatePercent: 0,
		}

		res := valuation.Evaluate(rec, date(t, "2023-04-01"))

		assert.Equal(t, 15000.0, res.InvestedTotal)
		assert.Equal(t, 15000.0, res.CurrentValue)
	})

	t.Run("contributions start one month after the start date", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 10000,
			RecurringAmount:   1000,
			StartDate:         datePtr(t, "2023-01-15"),
			RecurringType:     model.RecurringMonthly,
		}

		// Feb 15 and Mar 15 have happened, Apr 15 has not.
		res := valuation.Evaluate(rec, date(t, "2023-04-14"))

		assert.Equal(t, 12000.0, res.InvestedTotal)
	})

	t.Run("each contribution compounds from its own date", func(t *testing.T) {
		start := date(t, "2022-01-01")
		now := date(t, "2022-04-01")
		rec := model.Investment{
			InvestedPrincipal: 1000,
			RecurringAmount:   100,
			StartDate:         &start,
			RecurringType:     model.RecurringMonthly,
			AnnualRatePercent: 12,
		}

		res := valuation.Evaluate(rec, now)

		expected := 1000 * math.Pow(1.12, valuation.YearsBetween(start, now))
		for m := 1; m <= 3; m++ {
			expected += 100 * math.Pow(1.12, valuation.YearsBetween(valuation.AddMonths(start, m), now))
		}
		assert.Equal(t, 1300.0, res.InvestedTotal)
		assert.InDelta(t, round2(expected), res.CurrentValue, 0.011)
	})

	t.Run("zero sip adds nothing", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 500,
			StartDate:         datePtr(t, "2020-01-01"),
			RecurringType:     model.RecurringMonthly,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 500.0, res.InvestedTotal)
	})

	t.Run("month-end start rolls over and stops at the first future date", func(t *testing.T) {
		rec := model.Investment{
			RecurringAmount: 100,
			StartDate:       datePtr(t, "2023-01-31"),
			RecurringType:   model.RecurringMonthly,
		}

		// Jan 31 + 1 month normalizes to Mar 3, which is still ahead on Mar 2.
		res := valuation.Evaluate(rec, date(t, "2023-03-02"))
		assert.Zero(t, res.InvestedTotal)

		// On Mar 3 the first contribution has fired; the second (Mar 31) has not.
		res = valuation.Evaluate(rec, date(t, "2023-03-03"))
		assert.Equal(t, 100.0, res.InvestedTotal)
	})
}

func TestEvaluate_Yearly(t *testing.T) {
	t.Run("principal is added on every passed anniversary", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 1000,
			StartDate:         datePtr(t, "2020-06-15"),
			RecurringType:     model.RecurringYearly,
		}

		res := valuation.Evaluate(rec, date(t, "2023-07-01"))

		assert.Equal(t, 4000.0, res.InvestedTotal)
		assert.Equal(t, 4000.0, res.CurrentValue)
	})

	t.Run("year count uses fractional years", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 1000,
			StartDate:         datePtr(t, "2020-06-15"),
			RecurringType:     model.RecurringYearly,
		}

		// 1095 days is just short of three 365.25-day years.
		res := valuation.Evaluate(rec, date(t, "2023-06-15"))

		assert.Equal(t, 3000.0, res.InvestedTotal)
	})

	t.Run("zero principal adds nothing", func(t *testing.T) {
		rec := model.Investment{
			StartDate:       datePtr(t, "2010-01-01"),
			RecurringType:   model.RecurringYearly,
			RecurringAmount: 100,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Zero(t, res.InvestedTotal)
	})
}

func TestEvaluate_Custom(t *testing.T) {
	t.Run("principal is added every interval", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal:       1000,
			StartDate:               datePtr(t, "2023-01-15"),
			RecurringType:           model.RecurringCustom,
			RecurringIntervalMonths: 3,
		}

		res := valuation.Evaluate(rec, date(t, "2023-12-20"))

		assert.Equal(t, 4000.0, res.InvestedTotal)
	})

	t.Run("zero interval only evaluates the initial contribution", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal:       1000,
			StartDate:               datePtr(t, "2015-01-01"),
			RecurringType:           model.RecurringCustom,
			RecurringIntervalMonths: 0,
			RecurringAmount:         300,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 1000.0, res.InvestedTotal)
	})

	t.Run("negative interval is ignored", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal:       1000,
			StartDate:               datePtr(t, "2015-01-01"),
			RecurringType:           model.RecurringCustom,
			RecurringIntervalMonths: -2,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 1000.0, res.InvestedTotal)
	})

	t.Run("interval is ignored for other schedules", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal:       1000,
			StartDate:               datePtr(t, "2015-01-01"),
			RecurringType:           model.RecurringNone,
			RecurringIntervalMonths: 1,
		}

		res := valuation.Evaluate(rec, date(t, "2024-01-01"))

		assert.Equal(t, 1000.0, res.InvestedTotal)
	})
}

func TestEvaluate_ManualOverride(t *testing.T) {
	rec := model.Investment{
		InvestedPrincipal:  1000,
		ManualCurrentValue: 1234.567,
		StartDate:          datePtr(t, "2020-01-01"),
		AnnualRatePercent:  10,
	}

	res := valuation.Evaluate(rec, date(t, "2024-01-01"))

	assert.Equal(t, 1234.57, res.CurrentValue)
	assert.Greater(t, res.ComputedValue, 1000.0)
	assert.NotEqual(t, res.CurrentValue, res.ComputedValue)
	assert.Equal(t, 1000.0, res.InvestedTotal)
}

func TestEvaluate_MalformedInput(t *testing.T) {
	now := date(t, "2024-01-01")

	t.Run("negative amounts are treated as zero", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal:  -500,
			ManualCurrentValue: -20,
			RecurringAmount:    -10,
			RecurringType:      model.RecurringMonthly,
			StartDate:          datePtr(t, "2023-01-01"),
			AnnualRatePercent:  5,
		}

		res := valuation.Evaluate(rec, now)

		assert.Zero(t, res.InvestedTotal)
		assert.Zero(t, res.CurrentValue)
	})

	t.Run("non-finite values are treated as zero", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 100,
			AnnualRatePercent: math.NaN(),
			RecurringAmount:   math.Inf(1),
			RecurringType:     model.RecurringMonthly,
			StartDate:         datePtr(t, "2023-01-01"),
		}

		res := valuation.Evaluate(rec, now)

		assert.Equal(t, 100.0, res.InvestedTotal)
		assert.Equal(t, 100.0, res.CurrentValue)
	})

	t.Run("rates below -100% erode the value to zero", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 100,
			AnnualRatePercent: -150,
			StartDate:         datePtr(t, "2023-01-01"),
		}

		res := valuation.Evaluate(rec, now)

		assert.Equal(t, 100.0, res.InvestedTotal)
		assert.Zero(t, res.CurrentValue)
	})

	t.Run("unknown recurring type adds nothing", func(t *testing.T) {
		rec := model.Investment{
			InvestedPrincipal: 100,
			RecurringType:     model.RecurringType("weekly"),
			RecurringAmount:   10,
			StartDate:         datePtr(t, "2023-01-01"),
		}

		res := valuation.Evaluate(rec, now)

		assert.Equal(t, 100.0, res.InvestedTotal)
	})
}

func TestEvaluate_IterationCap(t *testing.T) {
	rec := model.Investment{
		RecurringAmount: 1,
		StartDate:       datePtr(t, "1000-01-01"),
		RecurringType:   model.RecurringMonthly,
	}

	res := valuation.Evaluate(rec, date(t, "2024-01-01"))

	assert.Equal(t, float64(valuation.MaxRecurringContributions), res.InvestedTotal)

	custom := model.Investment{
		InvestedPrincipal:       1,
		StartDate:               datePtr(t, "0001-01-01"),
		RecurringType:           model.RecurringCustom,
		RecurringIntervalMonths: 1,
	}

	res = valuation.Evaluate(custom, date(t, "2024-01-01"))

	assert.Equal(t, float64(valuation.MaxRecurringContributions+1), res.InvestedTotal)
}

func TestEvaluate_Properties(t *testing.T) {
	records := []model.Investment{
		{InvestedPrincipal: 100000, StartDate: datePtr(t, "2023-04-10"), AnnualRatePercent: 10, RecurringType: model.RecurringMonthly, RecurringAmount: 5000},
		{InvestedPrincipal: 200000, StartDate: datePtr(t, "2022-12-01"), AnnualRatePercent: 4.5},
		{InvestedPrincipal: 1000, StartDate: datePtr(t, "2018-02-28"), AnnualRatePercent: 8, RecurringType: model.RecurringYearly},
		{InvestedPrincipal: 2500, StartDate: datePtr(t, "2019-10-31"), AnnualRatePercent: 6, RecurringType: model.RecurringCustom, RecurringIntervalMonths: 4},
	}

	t.Run("evaluate is idempotent", func(t *testing.T) {
		now := date(t, "2024-06-30")
		for _, rec := range records {
			assert.Equal(t, valuation.Evaluate(rec, now), valuation.Evaluate(rec, now))
		}
	})

	t.Run("current value never decreases as time passes", func(t *testing.T) {
		for _, rec := range records {
			prev := 0.0
			for now := date(t, "2017-01-01"); now.Before(date(t, "2026-01-01")); now = now.AddDate(0, 0, 11) {
				res := valuation.Evaluate(rec, now)
				assert.GreaterOrEqual(t, res.CurrentValue, prev, "at %s", now.Format(model.DateLayout))
				prev = res.CurrentValue
			}
		}
	})

	t.Run("invested total is at least the principal", func(t *testing.T) {
		now := date(t, "2024-06-30")
		for _, rec := range records {
			res := valuation.Evaluate(rec, now)
			assert.GreaterOrEqual(t, res.InvestedTotal, rec.InvestedPrincipal)
			if rec.RecurringType == "" || rec.RecurringType == model.RecurringNone {
				assert.Equal(t, rec.InvestedPrincipal, res.InvestedTotal)
			}
		}
	})
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2023-01-31", 1, "2023-03-03"},
		{"2024-01-31", 1, "2024-03-02"},
		{"2023-01-15", 1, "2023-02-15"},
		{"2023-11-30", 3, "2024-03-01"},
		{"2023-05-10", 12, "2024-05-10"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := valuation.AddMonths(date(t, tt.start), tt.n)
			assert.Equal(t, tt.want, got.Format(model.DateLayout))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 1, valuation.MonthsBetween(date(t, "2023-01-31"), date(t, "2023-02-01")))
	assert.Equal(t, 15, valuation.MonthsBetween(date(t, "2022-12-01"), date(t, "2024-03-01")))
	assert.Equal(t, -2, valuation.MonthsBetween(date(t, "2024-03-01"), date(t, "2024-01-20")))
}
