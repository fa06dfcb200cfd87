package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hliang/fundglance/internal/api/request"
	"github.com/hliang/fundglance/internal/api/response"
	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/validation"
)

// PositionHandler handles HTTP requests for single-position mutations.
type PositionHandler struct {
	portfolioService *service.PortfolioService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(portfolioService *service.PortfolioService) *PositionHandler {
	return &PositionHandler{
		portfolioService: portfolioService,
	}
}

// PositionResponse is returned by the add and update endpoints.
type PositionResponse struct {
	Message  string         `json:"message"`
	Position model.Position `json:"position"`
}

// DeleteResponse is returned by the delete endpoint.
type DeleteResponse struct {
	Message   string          `json:"message"`
	AssetType model.AssetType `json:"asset_type"`
	Code      string          `json:"code"`
}

// Create handles POST requests to add a new position.
//
// Endpoint: POST /api/positions
// Request Body: CreatePositionRequest (asset_type, code, optional name, units, cost_price)
// Response: 201 Created with PositionResponse
// Error: 400 Bad Request if validation fails or the position already exists
// Error: 500 Internal Server Error if the config cannot be loaded or saved
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.portfolioService.AddPosition(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePosition) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrDuplicatePosition.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to add position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, PositionResponse{
		Message:  "position added",
		Position: position,
	})
}

// Update handles PATCH requests to partially update an existing position.
//
// Endpoint: PATCH /api/positions/{asset_type}/{code}
// Request Body: UpdatePositionRequest (all fields optional, at least one required)
// Response: 200 OK with PositionResponse
// Error: 400 Bad Request if the asset type is invalid, the patch is empty or validation fails
// Error: 404 Not Found if no matching position exists
// Error: 500 Internal Server Error if the config cannot be loaded or saved
func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	assetType, ok := validation.ParseAssetType(chi.URLParam(r, "asset_type"))
	if !ok {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnsupportedAssetType.Error(), nil)
		return
	}
	code := chi.URLParam(r, "code")

	req, err := parseJSON[request.UpdatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.portfolioService.UpdatePosition(assetType, code, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PositionResponse{
		Message:  "position updated",
		Position: position,
	})
}

// Delete handles DELETE requests to remove a position.
//
// Endpoint: DELETE /api/positions/{asset_type}/{code}
// Response: 200 OK with DeleteResponse
// Error: 400 Bad Request if the asset type is invalid
// Error: 404 Not Found if no matching position exists
// Error: 500 Internal Server Error if the config cannot be loaded or saved
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assetType, ok := validation.ParseAssetType(chi.URLParam(r, "asset_type"))
	if !ok {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnsupportedAssetType.Error(), nil)
		return
	}
	code := chi.URLParam(r, "code")

	if err := h.portfolioService.DeletePosition(assetType, code); err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DeleteResponse{
		Message:   "position deleted",
		AssetType: assetType,
		Code:      code,
	})
}
