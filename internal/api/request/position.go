package request

// CreatePositionRequest is the POST /api/positions body.
type CreatePositionRequest struct {
	AssetType string  `json:"asset_type"`
	Code      string  `json:"code"`
	Name      string  `json:"name,omitempty"`
	Units     float64 `json:"units"`
	CostPrice float64 `json:"cost_price"`
}

// UpdatePositionRequest is the PATCH /api/positions/{asset_type}/{code} body.
// All fields are optional, but at least one must be supplied.
type UpdatePositionRequest struct {
	Name      *string  `json:"name"`
	Units     *float64 `json:"units"`
	CostPrice *float64 `json:"cost_price"`
}

// Empty reports whether the patch carries no fields at all.
func (r UpdatePositionRequest) Empty() bool {
	return r.Name == nil && r.Units == nil && r.CostPrice == nil
}
