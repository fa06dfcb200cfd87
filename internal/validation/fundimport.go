package validation

import (
	"fmt"
	"strings"

	"github.com/hliang/fundglance/internal/api/request"
)

const maxImportItems = 100

func ValidateImportFunds(req request.ImportFundsRequest) error {
	errors := make(map[string]string)

	if len(req.Items) == 0 {
		errors["items"] = "at least one item is required"
	} else if len(req.Items) > maxImportItems {
		errors["items"] = fmt.Sprintf("at most %d items are allowed", maxImportItems)
	}

	for i, item := range req.Items {
		key := fmt.Sprintf("items[%d]", i)

		code := strings.TrimSpace(item.Code)
		if len(code) < 2 || len(code) > 20 {
			errors[key+".code"] = "code must be 2-20 characters"
		}
		if item.Amount <= 0 {
			errors[key+".amount"] = "amount must be greater than zero"
		}
		if len(item.Name) > 50 {
			errors[key+".name"] = "name must be 50 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
