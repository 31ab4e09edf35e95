package services

import (
	"gorm.io/gorm"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/metrics"
	"niveshak/internal/models"
)

// portfolioService computes the dashboard aggregation.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// GetDashboard fetches the user's investments and transactions in two reads
// and derives everything else in memory: a per-investment summary, the
// asset-type allocation, and grand totals. Nothing derived is persisted.
func (s *portfolioService) GetDashboard(userID string) (*Dashboard, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byInvestment := make(map[string][]models.Transaction, len(investments))
	for _, tx := range transactions {
		byInvestment[tx.InvestmentID] = append(byInvestment[tx.InvestmentID], tx)
	}

	dashboard := &Dashboard{
		InvestmentCount: len(investments),
		Investments:     make([]InvestmentSummary, 0, len(investments)),
	}
	positions := make([]metrics.Position, 0, len(investments))

	for _, inv := range investments {
		summary := metrics.Summarize(byInvestment[inv.ID])
		dashboard.Investments = append(dashboard.Investments, InvestmentSummary{
			Investment: inv,
			Summary:    summary,
		})
		positions = append(positions, metrics.Position{
			AssetType: inv.AssetType,
			Value:     summary.TotalValue,
			Profit:    summary.TotalProfit,
		})
	}

	dashboard.Allocation = metrics.Rollup(positions)
	dashboard.TotalValue, dashboard.TotalProfit = metrics.Totals(dashboard.Allocation)

	return dashboard, nil
}
