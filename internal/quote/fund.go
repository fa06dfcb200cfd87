package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

// The fund endpoint returns a JSONP-wrapped payload: jsonpgz({...});
var jsonpPattern = regexp.MustCompile(`jsonpgz\((.*?)\);?$`)

// fundEstimate is the JSON object inside the jsonpgz() wrapper.
type fundEstimate struct {
	Name   string `json:"name"`
	Gsz    string `json:"gsz"`    // estimated net value
	Gszzl  string `json:"gszzl"`  // estimated change percent
	Gztime string `json:"gztime"` // estimate timestamp
}

// fetchFundQuote retrieves an intraday fund estimate from eastmoney.
// The estimated price (gsz) is required; a missing or non-numeric value is
// a hard failure.
func (p *Provider) fetchFundQuote(ctx context.Context, code string) (model.RawQuote, error) {
	url := fmt.Sprintf("%s/js/%s.js", p.fundBaseURL, code)
	body, err := p.fetchBody(ctx, url, "fund endpoint")
	if err != nil {
		return model.RawQuote{}, err
	}

	match := jsonpPattern.FindSubmatch(bytes.TrimSpace(body))
	if match == nil {
		return model.RawQuote{}, fmt.Errorf("%w: fund payload is not jsonpgz-wrapped", apperrors.ErrMalformedQuote)
	}

	var payload fundEstimate
	if err := json.Unmarshal(match[1], &payload); err != nil {
		return model.RawQuote{}, fmt.Errorf("%w: fund payload is not valid JSON", apperrors.ErrMalformedQuote)
	}

	price, ok := parseFloat(payload.Gsz)
	if !ok {
		return model.RawQuote{}, fmt.Errorf("%w: fund estimate gsz=%q", apperrors.ErrMissingPrice, payload.Gsz)
	}

	var changePercent *float64
	if cp, ok := parseFloat(payload.Gszzl); ok {
		changePercent = &cp
	}

	name := payload.Name
	if name == "" {
		name = code
	}

	return model.RawQuote{
		Code:          code,
		Name:          name,
		Price:         price,
		ChangePercent: changePercent,
		QuoteTime:     payload.Gztime,
		Source:        model.SourceEastmoney,
	}, nil
}
