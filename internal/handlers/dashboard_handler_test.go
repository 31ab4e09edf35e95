package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/metrics"
	"niveshak/internal/models"
	"niveshak/internal/services"
)

type mockPortfolioService struct {
	getDashboardFn func(userID string) (*services.Dashboard, error)
}

func (m *mockPortfolioService) GetDashboard(userID string) (*services.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID)
	}
	return &services.Dashboard{}, nil
}

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", injectUserID(testUserID), handler.GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("returns totals and allocation", func(t *testing.T) {
		portfolioSvc := &mockPortfolioService{
			getDashboardFn: func(userID string) (*services.Dashboard, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				return &services.Dashboard{
					TotalValue:      decimal.NewFromInt(3500),
					TotalProfit:     decimal.NewFromInt(75),
					InvestmentCount: 2,
					Allocation: []metrics.CategoryBucket{
						{AssetType: models.AssetTypeEquity, Value: decimal.NewFromInt(3000), Profit: decimal.NewFromInt(100)},
						{AssetType: models.AssetTypeBonds, Value: decimal.NewFromInt(500), Profit: decimal.NewFromInt(-25)},
					},
					Investments: []services.InvestmentSummary{},
				}, nil
			},
		}
		handler := NewDashboardHandler(portfolioSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_value"] != "3500" {
			t.Errorf("expected total_value 3500, got %v", result["total_value"])
		}
		if result["investment_count"].(float64) != 2 {
			t.Errorf("expected 2 investments, got %v", result["investment_count"])
		}
		allocation := result["allocation"].([]interface{})
		if len(allocation) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(allocation))
		}
		first := allocation[0].(map[string]interface{})
		if first["asset_type"] != "Equity" {
			t.Errorf("expected first bucket Equity, got %v", first["asset_type"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewDashboardHandler(&mockPortfolioService{})
		r := gin.New()
		r.GET("/dashboard", handler.GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on service failure", func(t *testing.T) {
		portfolioSvc := &mockPortfolioService{
			getDashboardFn: func(_ string) (*services.Dashboard, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("db gone"))
			},
		}
		handler := NewDashboardHandler(portfolioSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
