// Package portfolio folds per-investment valuations into portfolio totals,
// a category allocation and filtered, sorted views.
package portfolio

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// FilterAll is the tag filter value that disables filtering.
const FilterAll = "All"

// Totals are the portfolio-wide sums over every investment.
type Totals struct {
	Invested float64 `json:"invested"`
	Current  float64 `json:"current"`
	Profit   float64 `json:"profit"`
}

// AllocationSlice is the current value held in one category.
type AllocationSlice struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// Result is the aggregated state of a portfolio at a reference instant.
// Totals and Allocation always cover every investment; Views honour the tag
// filter and the sort key.
type Result struct {
	Views      []model.InvestmentView `json:"investments"`
	Totals     Totals                 `json:"totals"`
	Allocation []AllocationSlice      `json:"allocation"`
}

// NewView evaluates rec at now and returns its derived view.
func NewView(rec model.Investment, now time.Time) model.InvestmentView {
	res := valuation.Evaluate(rec, now)

	invested := decimal.NewFromFloat(res.InvestedTotal)
	display := decimal.NewFromFloat(res.CurrentValue)
	gain := display.Sub(invested)

	view := model.InvestmentView{
		Investment:           rec,
		InvestedTotal:        res.InvestedTotal,
		ComputedCurrentValue: res.ComputedValue,
		DisplayCurrentValue:  res.CurrentValue,
		Gain:                 gain.InexactFloat64(),
	}
	if !invested.IsZero() {
		view.ReturnPercent = gain.Div(invested).Shift(2).Round(2).InexactFloat64()
	}
	return view
}

// Aggregate evaluates every record at now and folds the results.
//
// Each record is evaluated independently, so a malformed record only degrades
// its own view. filterTag selects views whose tag matches case-insensitively;
// FilterAll or an empty string keeps every view. The records slice is never
// modified.
func Aggregate(records []model.Investment, now time.Time, filterTag string, sortKey SortKey) Result {
	views := Views(records, now)

	return Result{
		Views:      Sort(Filter(views, filterTag), sortKey),
		Totals:     Summarize(views),
		Allocation: Allocate(views),
	}
}

// Views evaluates every record at now, in order.
func Views(records []model.Investment, now time.Time) []model.InvestmentView {
	views := make([]model.InvestmentView, len(records))
	for i, rec := range records {
		views[i] = NewView(rec, now)
	}
	return views
}

// Summarize sums the invested totals and display values of views.
func Summarize(views []model.InvestmentView) Totals {
	invested, current := decimal.Zero, decimal.Zero
	for _, v := range views {
		invested = invested.Add(decimal.NewFromFloat(v.InvestedTotal))
		current = current.Add(decimal.NewFromFloat(v.DisplayCurrentValue))
	}
	return Totals{
		Invested: invested.InexactFloat64(),
		Current:  current.InexactFloat64(),
		Profit:   current.Sub(invested).InexactFloat64(),
	}
}

// Allocate sums display values per category, in order of first appearance.
func Allocate(views []model.InvestmentView) []AllocationSlice {
	index := make(map[string]int)
	totals := []decimal.Decimal{}
	labels := []string{}

	for _, v := range views {
		i, ok := index[v.Category]
		if !ok {
			i = len(labels)
			index[v.Category] = i
			labels = append(labels, v.Category)
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(decimal.NewFromFloat(v.DisplayCurrentValue))
	}

	allocation := make([]AllocationSlice, len(labels))
	for i, label := range labels {
		allocation[i] = AllocationSlice{Label: label, Total: totals[i].InexactFloat64()}
	}
	return allocation
}

// Filter returns the views whose tag equals tag, ignoring case.
// FilterAll and the empty string return every view. The result is a new slice.
func Filter(views []model.InvestmentView, tag string) []model.InvestmentView {
	if tag == "" || tag == FilterAll {
		return append([]model.InvestmentView{}, views...)
	}

	want := strings.ToLower(tag)
	filtered := []model.InvestmentView{}
	for _, v := range views {
		if strings.ToLower(v.Tag) == want {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
