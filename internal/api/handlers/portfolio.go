package handlers

import (
	"net/http"

	"github.com/hliang/fundglance/internal/api/request"
	"github.com/hliang/fundglance/internal/api/response"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio valuation and fund
// imports. It serves as the HTTP layer adapter, parsing requests and
// delegating business logic to the portfolio service.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Snapshot handles GET requests for the current portfolio valuation.
// Per-position quote failures are contained in the position views; the
// response is 200 with a mix of ok/error entries.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioSnapshot
// Error: 500 Internal Server Error if the config file is malformed
func (h *PortfolioHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.portfolioService.Snapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// ImportFunds handles POST requests to import fund purchases by amount.
// Items fail independently; the response is 200 with per-item statuses.
//
// Endpoint: POST /api/portfolio/import-funds
// Request Body: ImportFundsRequest (1-100 items of code, amount, optional name)
// Response: 200 OK with FundImportResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the config cannot be loaded or saved
func (h *PortfolioHandler) ImportFunds(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ImportFundsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateImportFunds(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.portfolioService.ImportFunds(r.Context(), req.Items)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to import funds", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
