package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
)

// ChartFormat is the image encoding of a rendered chart.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

// ParseChartFormat maps a query value to a ChartFormat. Empty means PNG.
func ParseChartFormat(s string) (ChartFormat, error) {
	switch ChartFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ChartPNG:
		return ChartPNG, nil
	case ChartSVG:
		return ChartSVG, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidChartFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f ChartFormat) ContentType() string {
	if f == ChartSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// DefaultCurrency is used when the configured display currency is unknown.
const DefaultCurrency = money.INR

// ChartService renders the category allocation as a pie chart.
type ChartService struct {
	investmentService *InvestmentService
	currency          string
}

// NewChartService creates a new ChartService. Amounts are labelled in currency,
// an ISO 4217 code; unknown codes fall back to DefaultCurrency.
func NewChartService(investmentService *InvestmentService, currency string) *ChartService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if money.GetCurrency(currency) == nil {
		log.Warn().Str("currency", currency).Str("fallback", DefaultCurrency).Msg("unknown display currency")
		currency = DefaultCurrency
	}
	return &ChartService{
		investmentService: investmentService,
		currency:          currency,
	}
}

// FormatAmount renders v in the display currency, e.g. "₹100,000.00".
func (s *ChartService) FormatAmount(v float64) string {
	return FormatMoney(v, s.currency)
}

// FormatMoney renders v in the currency with the given ISO 4217 code.
func FormatMoney(v float64, currency string) string {
	return money.NewFromFloat(v, currency).Display()
}

// Allocation renders the allocation of the whole ledger.
func (s *ChartService) Allocation(format ChartFormat) ([]byte, error) {
	result, err := s.investmentService.GetPortfolio(portfolio.FilterAll, portfolio.SortNone)
	if err != nil {
		return nil, err
	}
	return s.RenderAllocation(result.Allocation, format)
}

// RenderAllocation renders slices as a pie chart. Slices without a positive total
// are left out; when none remain apperrors.ErrNoAllocationData is returned.
func (s *ChartService) RenderAllocation(slices []portfolio.AllocationSlice, format ChartFormat) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, slice := range slices {
		if slice.Total <= 0 {
			continue
		}
		label := slice.Label
		if label == "" {
			label = "Uncategorized"
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", label, s.FormatAmount(slice.Total)),
			Value: slice.Total,
		})
	}

	if len(values) == 0 {
		return nil, apperrors.ErrNoAllocationData
	}

	pie := chart.PieChart{
		Title:  "Allocation",
		Width:  512,
		Height: 512,
		Values: values,
	}

	provider := chart.PNG
	if format == ChartSVG {
		provider = chart.SVG
	}

	var buf bytes.Buffer
	if err := pie.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRenderChart, err)
	}

	return buf.Bytes(), nil
}
