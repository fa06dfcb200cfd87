package handlers

import (
	"net/http"

	"github.com/hliang/fundglance/internal/api/response"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles the liveness probe.
//
// Endpoint: GET /health
// Response: 200 OK with a constant ok payload
func Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
