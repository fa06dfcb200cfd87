package quote

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

// The stock endpoint responds with v_<code>="field0~field1~...";
var stockBodyPattern = regexp.MustCompile(`="(.*)";?$`)

// marketPrefixes are exchange tags that pass through normalization unchanged.
var marketPrefixes = []string{"sh", "sz", "hk", "us"}

// Indexes into the ~-separated Tencent quote fields.
const (
	stockFieldName      = 1
	stockFieldPrice     = 3
	stockFieldPrevClose = 4
	stockFieldQuoteTime = 30
	stockMinFields      = 5
)

// NormalizeStockCode lowercases the code and prefixes a market tag when the
// input is purely numeric: sh for codes starting with 5, 6 or 9, sz
// otherwise. Already-prefixed codes pass through unchanged.
func NormalizeStockCode(code string) string {
	candidate := strings.ToLower(strings.TrimSpace(code))
	for _, prefix := range marketPrefixes {
		if strings.HasPrefix(candidate, prefix) {
			return candidate
		}
	}
	if !isDigits(candidate) {
		return candidate
	}
	switch candidate[0] {
	case '5', '6', '9':
		return "sh" + candidate
	default:
		return "sz" + candidate
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// fetchStockQuote retrieves a stock quote from the Tencent endpoint. The body
// is GBK-encoded; the quoted payload is split on ~ into positional fields.
// The current price is required; the change percent is derived from the
// previous close only when that close is positive.
func (p *Provider) fetchStockQuote(ctx context.Context, code string) (model.RawQuote, error) {
	normalized := NormalizeStockCode(code)
	url := fmt.Sprintf("%s/q=%s", p.stockBaseURL, normalized)
	body, err := p.fetchBody(ctx, url, "stock endpoint")
	if err != nil {
		return model.RawQuote{}, err
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		return model.RawQuote{}, fmt.Errorf("%w: stock payload is not GBK", apperrors.ErrMalformedQuote)
	}

	match := stockBodyPattern.FindStringSubmatch(strings.TrimSpace(string(decoded)))
	if match == nil {
		return model.RawQuote{}, fmt.Errorf("%w: stock payload is not a quoted assignment", apperrors.ErrMalformedQuote)
	}

	fields := strings.Split(match[1], "~")
	if len(fields) < stockMinFields {
		return model.RawQuote{}, fmt.Errorf("%w: stock payload has %d fields, need %d", apperrors.ErrMalformedQuote, len(fields), stockMinFields)
	}

	price, ok := parseFloat(fields[stockFieldPrice])
	if !ok {
		return model.RawQuote{}, fmt.Errorf("%w: stock price %q", apperrors.ErrMissingPrice, fields[stockFieldPrice])
	}

	var changePercent *float64
	if prevClose, ok := parseFloat(fields[stockFieldPrevClose]); ok && prevClose > 0 {
		cp := (price - prevClose) / prevClose * 100
		changePercent = &cp
	}

	name := fields[stockFieldName]
	if name == "" {
		name = normalized
	}

	quoteTime := ""
	if len(fields) > stockFieldQuoteTime {
		quoteTime = fields[stockFieldQuoteTime]
	}

	return model.RawQuote{
		Code:          normalized,
		Name:          name,
		Price:         price,
		ChangePercent: changePercent,
		QuoteTime:     quoteTime,
		Source:        model.SourceTencent,
	}, nil
}
