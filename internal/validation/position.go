package validation

import (
	"strings"

	"github.com/hliang/fundglance/internal/api/request"
	"github.com/hliang/fundglance/internal/model"
)

var ValidAssetType = map[string]bool{
	"fund": true, "stock": true,
}

// ParseAssetType validates and converts an asset type path or body value.
func ParseAssetType(value string) (model.AssetType, bool) {
	if !ValidAssetType[value] {
		return "", false
	}
	return model.AssetType(value), true
}

func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if !ValidAssetType[req.AssetType] {
		errors["assetType"] = "asset type must be fund or stock"
	}

	code := strings.TrimSpace(req.Code)
	if len(code) < 2 || len(code) > 20 {
		errors["code"] = "code must be 2-20 characters"
	}

	if len(req.Name) > 50 {
		errors["name"] = "name must be 50 characters or less"
	}

	if req.Units <= 0 {
		errors["units"] = "units must be greater than zero"
	}

	if req.CostPrice <= 0 {
		errors["costPrice"] = "cost price must be greater than zero"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	if req.Empty() {
		errors["fields"] = "at least one of name, units or cost_price must be provided"
	}

	if req.Name != nil && len(*req.Name) > 50 {
		errors["name"] = "name must be 50 characters or less"
	}

	if req.Units != nil && *req.Units <= 0 {
		errors["units"] = "units must be greater than zero"
	}

	if req.CostPrice != nil && *req.CostPrice <= 0 {
		errors["costPrice"] = "cost price must be greater than zero"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
