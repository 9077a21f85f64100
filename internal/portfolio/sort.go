package portfolio

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// SortKey selects the ordering of portfolio views.
type SortKey string

const (
	SortNone     SortKey = "none"
	SortReturn   SortKey = "return"   // Return percentage, descending
	SortValue    SortKey = "value"    // Display value, descending
	SortCategory SortKey = "category" // Category label, ascending
	SortRate     SortKey = "roi"      // Annual rate, descending
)

// ParseSortKey converts a query value into a SortKey. The empty string maps to SortNone.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortNone, nil
	case SortNone, SortReturn, SortValue, SortCategory, SortRate:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidSortKey, s)
	}
}

// Sort returns views ordered by key in a new slice. Sorting is stable, so
// views that compare equal keep their stored order. Unknown keys leave the
// order unchanged.
func Sort(views []model.InvestmentView, key SortKey) []model.InvestmentView {
	sorted := slices.Clone(views)
	if sorted == nil {
		sorted = []model.InvestmentView{}
	}

	switch key {
	case SortReturn:
		slices.SortStableFunc(sorted, func(a, b model.InvestmentView) int {
			return cmp.Compare(returnFraction(b), returnFraction(a))
		})
	case SortValue:
		slices.SortStableFunc(sorted, func(a, b model.InvestmentView) int {
			return cmp.Compare(b.DisplayCurrentValue, a.DisplayCurrentValue)
		})
	case SortCategory:
		col := collate.New(language.Und)
		slices.SortStableFunc(sorted, func(a, b model.InvestmentView) int {
			return col.CompareString(a.Category, b.Category)
		})
	case SortRate:
		slices.SortStableFunc(sorted, func(a, b model.InvestmentView) int {
			return cmp.Compare(b.AnnualRatePercent, a.AnnualRatePercent)
		})
	}

	return sorted
}

// returnFraction is the unrounded return of a view. Views with nothing invested
// have no meaningful return and rank below every other view.
func returnFraction(v model.InvestmentView) float64 {
	if v.InvestedTotal == 0 {
		return math.Inf(-1)
	}
	return (v.DisplayCurrentValue - v.InvestedTotal) / v.InvestedTotal
}
