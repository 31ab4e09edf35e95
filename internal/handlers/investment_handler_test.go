package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/metrics"
	"niveshak/internal/models"
	"niveshak/internal/pagination"
	"niveshak/internal/services"
)

const testInvestmentID = "0198c5e0-2222-7000-8000-000000000002"

// --- mock services ---

type mockInvestmentService struct {
	createInvestmentFn    func(userID, name string, assetType models.AssetType, country models.Country) (*models.Investment, error)
	getUserInvestmentsFn  func(userID string) ([]models.Investment, error)
	getInvestmentByIDFn   func(userID, investmentID string) (*models.Investment, error)
	getInvestmentDetailFn func(userID, investmentID string, now time.Time) (*services.InvestmentDetail, error)
}

func (m *mockInvestmentService) CreateInvestment(userID, name string, assetType models.AssetType, country models.Country) (*models.Investment, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(userID, name, assetType, country)
	}
	return &models.Investment{}, nil
}

func (m *mockInvestmentService) GetUserInvestments(userID string) ([]models.Investment, error) {
	if m.getUserInvestmentsFn != nil {
		return m.getUserInvestmentsFn(userID)
	}
	return nil, nil
}

func (m *mockInvestmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	if m.getInvestmentByIDFn != nil {
		return m.getInvestmentByIDFn(userID, investmentID)
	}
	return &models.Investment{}, nil
}

func (m *mockInvestmentService) GetInvestmentDetail(userID, investmentID string, now time.Time) (*services.InvestmentDetail, error) {
	if m.getInvestmentDetailFn != nil {
		return m.getInvestmentDetailFn(userID, investmentID, now)
	}
	return &services.InvestmentDetail{}, nil
}

type mockTransactionService struct {
	recordTransactionFn         func(userID string, input services.RecordTransactionInput) (*models.Transaction, error)
	getInvestmentTransactionsFn func(userID, investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) RecordTransaction(userID string, input services.RecordTransactionInput) (*models.Transaction, error) {
	if m.recordTransactionFn != nil {
		return m.recordTransactionFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetInvestmentTransactions(userID, investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.getInvestmentTransactionsFn != nil {
		return m.getInvestmentTransactionsFn(userID, investmentID, page)
	}
	result := pagination.NewPageResponse[models.Transaction](nil, 1, 20, 0)
	return &result, nil
}

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(testUserID))
	auth.POST("/investments", handler.CreateInvestment)
	auth.GET("/investments", handler.GetUserInvestments)
	auth.GET("/investments/:id", handler.GetInvestment)
	auth.GET("/investments/:id/transactions", handler.GetInvestmentTransactions)
	return r
}

// --- tests ---

func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		invSvc := &mockInvestmentService{
			createInvestmentFn: func(userID, name string, assetType models.AssetType, country models.Country) (*models.Investment, error) {
				return &models.Investment{
					Base:      models.Base{ID: testInvestmentID},
					UserID:    userID,
					Name:      name,
					AssetType: assetType,
					Country:   country,
				}, nil
			},
		}
		handler := NewInvestmentHandler(invSvc, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"name":"Reliance Industries","asset_type":"Equity","country":"India"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		inv := result["investment"].(map[string]interface{})
		if inv["name"] != "Reliance Industries" {
			t.Errorf("expected name Reliance Industries, got %v", inv["name"])
		}
	})

	t.Run("returns 400 on unknown asset type", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"name":"Bitcoin","asset_type":"Crypto","country":"US"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown country", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments",
			`{"name":"Vodafone","asset_type":"Equity","country":"UK"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "POST", "/investments", `{"asset_type":"Equity","country":"India"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestInvestmentHandler_GetUserInvestments(t *testing.T) {
	t.Run("returns investments for user", func(t *testing.T) {
		invSvc := &mockInvestmentService{
			getUserInvestmentsFn: func(userID string) ([]models.Investment, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				return []models.Investment{
					{Name: "Apple", AssetType: models.AssetTypeEquity, Country: models.CountryUS},
					{Name: "Gold ETF", AssetType: models.AssetTypeCommodity, Country: models.CountryIndia},
				}, nil
			},
		}
		handler := NewInvestmentHandler(invSvc, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		investments := result["investments"].([]interface{})
		if len(investments) != 2 {
			t.Fatalf("expected 2 investments, got %d", len(investments))
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/investments", handler.GetUserInvestments)

		rec := doRequest(r, "GET", "/investments", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_GetInvestment(t *testing.T) {
	t.Run("returns detail with metrics", func(t *testing.T) {
		invSvc := &mockInvestmentService{
			getInvestmentDetailFn: func(_, investmentID string, _ time.Time) (*services.InvestmentDetail, error) {
				return &services.InvestmentDetail{
					Investment: models.Investment{Base: models.Base{ID: investmentID}, Name: "TCS"},
					Metrics: metrics.InvestmentMetrics{
						CurrentQty:    decimal.NewFromInt(10),
						TotalBuyValue: decimal.NewFromInt(1050),
					},
					Transactions: []services.TransactionWithMetrics{},
				}, nil
			},
		}
		handler := NewInvestmentHandler(invSvc, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		inv := result["investment"].(map[string]interface{})
		if inv["name"] != "TCS" {
			t.Errorf("expected name TCS, got %v", inv["name"])
		}
		m := result["metrics"].(map[string]interface{})
		if m["total_buy_value"] != "1050" {
			t.Errorf("expected total_buy_value 1050, got %v", m["total_buy_value"])
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		invSvc := &mockInvestmentService{
			getInvestmentDetailFn: func(_, _ string, _ time.Time) (*services.InvestmentDetail, error) {
				return nil, apperrors.ErrInvestmentNotFound
			},
		}
		handler := NewInvestmentHandler(invSvc, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVESTMENT_NOT_FOUND")
	})
}

func TestInvestmentHandler_GetInvestmentTransactions(t *testing.T) {
	t.Run("passes pagination through", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getInvestmentTransactionsFn: func(_, _ string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				if page.Page != 2 || page.PageSize != 10 {
					t.Errorf("expected page 2 size 10, got page %d size %d", page.Page, page.PageSize)
				}
				result := pagination.NewPageResponse([]models.Transaction{{}}, 2, 10, 11)
				return &result, nil
			},
		}
		handler := NewInvestmentHandler(&mockInvestmentService{}, txSvc, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID+"/transactions?page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 11 {
			t.Errorf("expected 11 total items, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 on oversized page_size", func(t *testing.T) {
		handler := NewInvestmentHandler(&mockInvestmentService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID+"/transactions?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown investment", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getInvestmentTransactionsFn: func(_, _ string, _ pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				return nil, apperrors.ErrInvestmentNotFound
			},
		}
		handler := NewInvestmentHandler(&mockInvestmentService{}, txSvc, &mockAuditService{})
		r := setupInvestmentRouter(handler)

		rec := doRequest(r, "GET", "/investments/"+testInvestmentID+"/transactions", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
