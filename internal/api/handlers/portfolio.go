package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	investmentService *service.InvestmentService
	exportService     *service.ExportService
	chartService      *service.ChartService
	snapshotService   *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(
	investmentService *service.InvestmentService,
	exportService *service.ExportService,
	chartService *service.ChartService,
	snapshotService *service.SnapshotService,
) *PortfolioHandler {
	return &PortfolioHandler{
		investmentService: investmentService,
		exportService:     exportService,
		chartService:      chartService,
		snapshotService:   snapshotService,
	}
}

// viewFilters reads the tag filter and sort key shared by the portfolio views.
func viewFilters(r *http.Request) (request.ViewFilters, error) {
	return request.ParseViewFilters(r.URL.Query().Get("tag"), r.URL.Query().Get("sort"))
}

// Portfolio handles GET requests for the aggregated portfolio: every investment
// with its derived values, the totals and the category allocation.
// Totals and allocation always cover the whole ledger; tag and sort only shape
// the investments list.
//
// Endpoint: GET /api/portfolio?tag=&sort=
// Response: 200 OK with portfolio.Result
// Error: 400 Bad Request for an unknown sort key
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	filters, err := viewFilters(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSortKey.Error(), err.Error())
		return
	}

	result, err := h.investmentService.GetPortfolio(filters.Tag, filters.Sort)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Export handles GET requests for a CSV download of the portfolio views.
//
// Endpoint: GET /api/portfolio/export?tag=&sort=
// Response: 200 OK with text/csv attachment
// Error: 400 Bad Request for an unknown sort key
func (h *PortfolioHandler) Export(w http.ResponseWriter, r *http.Request) {
	filters, err := viewFilters(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSortKey.Error(), err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.Export(&buf, filters.Tag, filters.Sort); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportService.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // Client disconnects are not actionable
}

// AllocationChart handles GET requests for the allocation pie chart.
//
// Endpoint: GET /api/portfolio/allocation/chart?format=png|svg
// Response: 200 OK with image/png or image/svg+xml
// Error: 400 Bad Request for an unknown format, 404 Not Found when no category has a positive value
func (h *PortfolioHandler) AllocationChart(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseChartFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidChartFormat.Error(), err.Error())
		return
	}

	img, err := h.chartService.Allocation(format)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoAllocationData) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoAllocationData.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRenderChart.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(img) //nolint:errcheck // Client disconnects are not actionable
}

// History handles GET requests for stored daily snapshots.
// A missing start_date defaults to 1970-01-01 and a missing end_date to today.
//
// Endpoint: GET /api/portfolio/history?start_date=&end_date=
// Response: 200 OK with array of Snapshot
// Error: 400 Bad Request for malformed dates or a reversed range
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	filters, err := request.ParseHistoryFilters(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
		h.investmentService.Now(),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	snapshots, err := h.snapshotService.History(filters.StartDate, filters.EndDate)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// CaptureSnapshot handles POST requests to record today's totals immediately.
//
// Endpoint: POST /api/portfolio/snapshot
// Response: 201 Created with Snapshot
func (h *PortfolioHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.Capture(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCaptureSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
