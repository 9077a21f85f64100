package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
)

// ExportHeader is the CSV column set of a portfolio export.
var ExportHeader = []string{
	"id", "name", "category", "invested_initial", "invested_total", "current",
	"date", "roi", "notes", "sip", "tag", "recurringType", "recurringInterval",
}

// ExportService writes portfolio views as CSV.
type ExportService struct {
	investmentService *InvestmentService
	filename          string
}

// NewExportService creates a new ExportService. filename is the suggested download name.
func NewExportService(investmentService *InvestmentService, filename string) *ExportService {
	return &ExportService{
		investmentService: investmentService,
		filename:          filename,
	}
}

// Filename returns the suggested file name of an export.
func (s *ExportService) Filename() string {
	return s.filename
}

// Export aggregates the ledger and writes the selected views to w.
func (s *ExportService) Export(w io.Writer, filterTag string, sortKey portfolio.SortKey) error {
	result, err := s.investmentService.GetPortfolio(filterTag, sortKey)
	if err != nil {
		return err
	}
	return WriteCSV(w, result.Views)
}

// WriteCSV writes views to w with ExportHeader as the first row.
// current is the display value, so a manual override is exported as entered.
func WriteCSV(w io.Writer, views []model.InvestmentView) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, v := range views {
		date := ""
		if v.StartDate != nil {
			date = v.StartDate.Format(model.DateLayout)
		}
		recurringType := string(v.RecurringType)
		if recurringType == "" {
			recurringType = string(model.RecurringNone)
		}

		row := []string{
			v.ID,
			v.Name,
			v.Category,
			formatNumber(v.InvestedPrincipal),
			formatNumber(v.InvestedTotal),
			formatNumber(v.DisplayCurrentValue),
			date,
			formatNumber(v.AnnualRatePercent),
			v.Notes,
			formatNumber(v.RecurringAmount),
			v.Tag,
			recurringType,
			strconv.Itoa(v.RecurringIntervalMonths),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", v.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
