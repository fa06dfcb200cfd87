package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/api"
	"github.com/hliang/fundglance/internal/api/handlers"
	"github.com/hliang/fundglance/internal/config"
	"github.com/hliang/fundglance/internal/model"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/store"
	"github.com/hliang/fundglance/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func newTestRouter(t *testing.T, portfolio model.PortfolioConfig, provider service.QuoteProvider) http.Handler {
	t.Helper()

	st := testutil.NewStore(t, portfolio)
	portfolioService := testutil.NewPortfolioService(t, st, provider)
	return api.NewRouter(portfolioService, testConfig(), zerolog.Nop())
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var decoded T
	if err := json.NewDecoder(recorder.Body).Decode(&decoded); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return decoded
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

	recorder := doRequest(t, router, http.MethodGet, "/health", "")

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}
	body := decodeBody[map[string]string](t, recorder)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestDashboardEndpoints(t *testing.T) {
	router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

	t.Run("serves the dashboard shell", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/", "")

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", recorder.Code)
		}
		if contentType := recorder.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/html") {
			t.Errorf("Expected HTML content type, got %q", contentType)
		}
	})

	t.Run("serves static assets", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/static/app.js", "")

		if recorder.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", recorder.Code)
		}
	})
}

func TestSnapshotEndpoint(t *testing.T) {
	t.Run("returns the valuation snapshot", func(t *testing.T) {
		portfolio := model.PortfolioConfig{
			BaseCurrency:   "CNY",
			RefreshSeconds: 15,
			Positions: []model.Position{
				{AssetType: model.AssetTypeFund, Code: "161725", Units: 100, CostPrice: 1.0},
			},
		}
		provider := testutil.NewStubProvider().WithQuote(model.AssetTypeFund, "161725", model.RawQuote{
			Code:   "161725",
			Name:   "招商中证白酒",
			Price:  1.2,
			Source: model.SourceEastmoney,
		})
		router := newTestRouter(t, portfolio, provider)

		recorder := doRequest(t, router, http.MethodGet, "/api/portfolio", "")

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		snapshot := decodeBody[model.PortfolioSnapshot](t, recorder)
		if snapshot.Meta.BaseCurrency != "CNY" {
			t.Errorf("Expected base currency CNY, got %q", snapshot.Meta.BaseCurrency)
		}
		if len(snapshot.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(snapshot.Positions))
		}
		if snapshot.Positions[0].Status != model.StatusOK {
			t.Errorf("Expected status ok, got %q", snapshot.Positions[0].Status)
		}
		if snapshot.Totals.TotalMarketValue != 120.0 {
			t.Errorf("Expected total market value 120, got %v", snapshot.Totals.TotalMarketValue)
		}
		if snapshot.Totals.TotalCost != 100.0 {
			t.Errorf("Expected total cost 100, got %v", snapshot.Totals.TotalCost)
		}
	})

	t.Run("contains per-position quote failures", func(t *testing.T) {
		portfolio := model.PortfolioConfig{
			BaseCurrency:   "CNY",
			RefreshSeconds: 15,
			Positions: []model.Position{
				{AssetType: model.AssetTypeStock, Code: "sh600036", Units: 10, CostPrice: 30},
			},
		}
		router := newTestRouter(t, portfolio, testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodGet, "/api/portfolio", "")

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", recorder.Code)
		}
		snapshot := decodeBody[model.PortfolioSnapshot](t, recorder)
		if snapshot.Positions[0].Status != model.StatusError {
			t.Errorf("Expected status error, got %q", snapshot.Positions[0].Status)
		}
		if snapshot.Totals.FailedPositions != 1 {
			t.Errorf("Expected 1 failed position, got %d", snapshot.Totals.FailedPositions)
		}
	})

	t.Run("returns 500 when the config file is malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portfolio.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}
		st := store.New(path, zerolog.Nop())
		portfolioService := testutil.NewPortfolioService(t, st, testutil.NewStubProvider())
		router := api.NewRouter(portfolioService, testConfig(), zerolog.Nop())

		recorder := doRequest(t, router, http.MethodGet, "/api/portfolio", "")

		if recorder.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", recorder.Code)
		}
	})
}

func TestImportFundsEndpoint(t *testing.T) {
	t.Run("imports a fund purchase by amount", func(t *testing.T) {
		provider := testutil.NewStubProvider().WithQuote(model.AssetTypeFund, "000001", model.RawQuote{
			Code:   "000001",
			Name:   "华夏成长",
			Price:  2.0,
			Source: model.SourceEastmoney,
		})
		router := newTestRouter(t, model.DefaultConfig(), provider)

		recorder := doRequest(t, router, http.MethodPost, "/api/portfolio/import-funds",
			`{"items": [{"code": "000001", "amount": 1000}]}`)

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		result := decodeBody[model.FundImportResponse](t, recorder)
		if result.Added != 1 {
			t.Errorf("Expected 1 added, got %d", result.Added)
		}
		if result.Items[0].Status != model.ImportStatusAdded {
			t.Errorf("Expected status added, got %q", result.Items[0].Status)
		}
		if result.Items[0].Units == nil || *result.Items[0].Units != 500.0 {
			t.Errorf("Expected 500 units, got %v", result.Items[0].Units)
		}
	})

	t.Run("reports per-item failures with status 200", func(t *testing.T) {
		router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/portfolio/import-funds",
			`{"items": [{"code": "000001", "amount": 1000}]}`)

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", recorder.Code)
		}
		result := decodeBody[model.FundImportResponse](t, recorder)
		if result.Failed != 1 {
			t.Errorf("Expected 1 failed, got %d", result.Failed)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/portfolio/import-funds", `{not json`)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/portfolio/import-funds", `{"items": []}`)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})
}

func TestCreatePositionEndpoint(t *testing.T) {
	createBody := `{"asset_type": "stock", "code": "600036", "name": "招商银行", "units": 100, "cost_price": 32.5}`

	t.Run("creates a position", func(t *testing.T) {
		router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/positions", createBody)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		result := decodeBody[handlers.PositionResponse](t, recorder)
		if result.Position.Code != "600036" {
			t.Errorf("Expected code 600036, got %q", result.Position.Code)
		}
		if result.Position.Units != 100.0 {
			t.Errorf("Expected 100 units, got %v", result.Position.Units)
		}
	})

	t.Run("rejects a duplicate position", func(t *testing.T) {
		portfolio := model.DefaultConfig()
		portfolio.Positions = []model.Position{
			{AssetType: model.AssetTypeStock, Code: "600036", Units: 50, CostPrice: 30},
		}
		router := newTestRouter(t, portfolio, testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/positions", createBody)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})

	t.Run("rejects an invalid payload", func(t *testing.T) {
		router := newTestRouter(t, model.DefaultConfig(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPost, "/api/positions",
			`{"asset_type": "stock", "code": "600036", "units": 0, "cost_price": 32.5}`)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})
}

func TestUpdatePositionEndpoint(t *testing.T) {
	seeded := func() model.PortfolioConfig {
		portfolio := model.DefaultConfig()
		portfolio.Positions = []model.Position{
			{AssetType: model.AssetTypeFund, Code: "161725", Units: 100, CostPrice: 1.0},
		}
		return portfolio
	}

	t.Run("applies a partial update", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPatch, "/api/positions/fund/161725", `{"units": 250}`)

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		result := decodeBody[handlers.PositionResponse](t, recorder)
		if result.Position.Units != 250.0 {
			t.Errorf("Expected 250 units, got %v", result.Position.Units)
		}
		if result.Position.CostPrice != 1.0 {
			t.Errorf("Expected cost price to be unchanged, got %v", result.Position.CostPrice)
		}
	})

	t.Run("rejects an unknown asset type", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPatch, "/api/positions/bond/161725", `{"units": 250}`)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPatch, "/api/positions/fund/161725", `{}`)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})

	t.Run("returns 404 for a missing position", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodPatch, "/api/positions/fund/999999", `{"units": 250}`)

		if recorder.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", recorder.Code)
		}
	})
}

func TestDeletePositionEndpoint(t *testing.T) {
	seeded := func() model.PortfolioConfig {
		portfolio := model.DefaultConfig()
		portfolio.Positions = []model.Position{
			{AssetType: model.AssetTypeStock, Code: "sh600036", Units: 10, CostPrice: 30},
		}
		return portfolio
	}

	t.Run("deletes a position", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodDelete, "/api/positions/stock/sh600036", "")

		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		result := decodeBody[handlers.DeleteResponse](t, recorder)
		if result.Code != "sh600036" {
			t.Errorf("Expected code sh600036, got %q", result.Code)
		}
	})

	t.Run("rejects an unknown asset type", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodDelete, "/api/positions/bond/sh600036", "")

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
	})

	t.Run("returns 404 for a missing position", func(t *testing.T) {
		router := newTestRouter(t, seeded(), testutil.NewStubProvider())

		recorder := doRequest(t, router, http.MethodDelete, "/api/positions/stock/sz000001", "")

		if recorder.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", recorder.Code)
		}
	})
}
