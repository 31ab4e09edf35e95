package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/metrics"
	"niveshak/internal/models"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment creates a new named investment for the user.
func (s *investmentService) CreateInvestment(userID, name string, assetType models.AssetType, country models.Country) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Investment name is required")
	}

	investment := &models.Investment{
		UserID:    userID,
		Name:      name,
		AssetType: assetType,
		Country:   country,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// GetUserInvestments returns all investments for a user ordered by name,
// the order the transaction form's picker presents them in.
func (s *investmentService) GetUserInvestments(userID string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).
		Order("name ASC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// GetInvestmentByID returns an investment if it belongs to the user.
// Another user's investment is indistinguishable from a missing one.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, "id = ?", investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if investment.UserID != userID {
		return nil, apperrors.ErrInvestmentNotFound
	}

	return &investment, nil
}

// GetInvestmentDetail returns the detail-view payload: the investment, its
// aggregate position metrics, and every transaction with per-row derived
// figures, ordered newest first. Metrics are recomputed on each call.
func (s *investmentService) GetInvestmentDetail(userID, investmentID string, now time.Time) (*InvestmentDetail, error) {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Where("investment_id = ?", investmentID).
		Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := &InvestmentDetail{
		Investment:   *investment,
		Metrics:      metrics.Aggregate(transactions),
		Transactions: make([]TransactionWithMetrics, 0, len(transactions)),
	}
	for _, tx := range transactions {
		detail.Transactions = append(detail.Transactions, TransactionWithMetrics{
			Transaction: tx,
			Metrics:     metrics.ComputeTransaction(tx, now),
		})
	}

	return detail, nil
}
