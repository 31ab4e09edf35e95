package services

import (
	"gorm.io/gorm"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/models"
	"niveshak/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db                *gorm.DB
	investmentService InvestmentServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, investmentService InvestmentServicer) TransactionServicer {
	return &transactionService{db: db, investmentService: investmentService}
}

// RecordTransaction records a buy or sell. When the input names an existing
// investment it must belong to the user. Otherwise a new investment is
// created from the input's name, asset type, and country, and both rows are
// written in a single database transaction so a failed insert can never
// leave an investment with no transactions behind.
func (s *transactionService) RecordTransaction(userID string, input RecordTransactionInput) (*models.Transaction, error) {
	switch input.Type {
	case models.TransactionTypeBuy, models.TransactionTypeSell:
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}
	if input.Price.IsNegative() || input.Quantity.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price and quantity must be non-negative")
	}

	investmentID := input.InvestmentID
	if investmentID != "" {
		if _, err := s.investmentService.GetInvestmentByID(userID, investmentID); err != nil {
			return nil, err
		}
	} else if input.Name == "" {
		return nil, apperrors.ErrMissingInvestment
	}

	var transaction models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if investmentID == "" {
			investment := &models.Investment{
				UserID:    userID,
				Name:      input.Name,
				AssetType: input.AssetType,
				Country:   input.Country,
			}
			if txErr := tx.Create(investment).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			investmentID = investment.ID
		}

		transaction = models.Transaction{
			UserID:           userID,
			InvestmentID:     investmentID,
			Type:             input.Type,
			Date:             input.Date,
			Price:            input.Price,
			Quantity:         input.Quantity,
			MiscCosts:        input.MiscCosts,
			BrokerFeePercent: input.BrokerFeePercent,
			TaxPercent:       input.TaxPercent,
			Notes:            input.Notes,
		}
		if txErr := tx.Create(&transaction).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// GetInvestmentTransactions returns a paginated list of transactions for an
// investment, newest first.
func (s *transactionService) GetInvestmentTransactions(userID, investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.investmentService.GetInvestmentByID(userID, investmentID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Transaction{}).Where("investment_id = ?", investmentID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("transaction_date DESC").
		Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
