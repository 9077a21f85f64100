package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// InvestmentHandler handles investment-related HTTP requests
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// GetInvestments handles GET requests to list every stored investment in ledger order.
//
// Endpoint: GET /api/investment
// Response: 200 OK with array of Investment
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) GetInvestments(w http.ResponseWriter, _ *http.Request) {
	investments, err := h.investmentService.ListInvestments()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve a single investment.
//
// Endpoint: GET /api/investment/{uuid}
// Response: 200 OK with Investment
// Error: 404 Not Found if the investment does not exist
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	investment, err := h.investmentService.GetInvestment(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestment.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// CreateInvestment handles POST requests to add an investment to the front of the ledger.
//
// Endpoint: POST /api/investment
// Request body: CreateInvestmentRequest
// Response: 201 Created with Investment
// Error: 400 Bad Request on invalid input, 409 Conflict on duplicate ID
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// UpdateInvestment handles PUT requests to partially update an investment.
// Only fields present in the body are changed.
//
// Endpoint: PUT /api/investment/{uuid}
// Request body: UpdateInvestmentRequest
// Response: 200 OK with Investment
// Error: 400 Bad Request on invalid input, 404 Not Found if the investment does not exist
func (h *InvestmentHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.UpdateInvestment(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// DeleteInvestment handles DELETE requests to remove an investment.
//
// Endpoint: DELETE /api/investment/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the investment does not exist
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.investmentService.DeleteInvestment(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ClearResponse reports the outcome of clearing the ledger.
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

// ClearInvestments handles DELETE requests to remove every investment.
//
// Endpoint: DELETE /api/investment
// Response: 200 OK with ClearResponse
func (h *InvestmentHandler) ClearInvestments(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.investmentService.ClearInvestments(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear investments", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ClearResponse{Deleted: deleted})
}

// ImportResponse reports the outcome of a legacy import.
type ImportResponse struct {
	Imported int  `json:"imported"`
	Replaced bool `json:"replaced"`
}

// ImportInvestments handles POST requests importing a legacy ledger blob: a JSON
// array of loosely typed records. With ?replace=true the import becomes the
// whole ledger; otherwise records are added in front of the existing ones.
//
// Endpoint: POST /api/investment/import
// Response: 201 Created with ImportResponse
// Error: 400 Bad Request if the body is not a JSON array, 409 Conflict on duplicate IDs
func (h *InvestmentHandler) ImportInvestments(w http.ResponseWriter, r *http.Request) {
	replace := false
	if v := r.URL.Query().Get("replace"); v != "" {
		var err error
		replace, err = strconv.ParseBool(v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid replace parameter", err.Error())
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	imported, err := h.investmentService.ImportLegacy(r.Context(), body, replace)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidImport):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidImport.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to import investments", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, ImportResponse{Imported: len(imported), Replaced: replace})
}

// Catalog handles GET requests for the category and tag options.
//
// Endpoint: GET /api/investment/catalog
// Response: 200 OK with service.Catalog
func (h *InvestmentHandler) Catalog(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.investmentService.Catalog())
}
