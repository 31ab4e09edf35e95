package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "niveshak/internal/errors"
	"niveshak/internal/models"
	"niveshak/internal/services"
)

// defaultBrokerFeePercent matches the transaction form's pre-filled value.
var defaultBrokerFeePercent = decimal.NewFromInt(5)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// RecordTransactionRequest represents the request payload for recording a
// transaction. Either investment_id names an existing investment, or name,
// asset_type, and country describe a new one to create alongside it.
type RecordTransactionRequest struct {
	InvestmentID     string    `json:"investment_id" binding:"omitempty,uuid"`
	Name             string    `json:"name" binding:"required_without=InvestmentID,max=200"`
	AssetType        string    `json:"asset_type" binding:"required_without=InvestmentID,omitempty,asset_type"`
	Country          string    `json:"country" binding:"required_without=InvestmentID,omitempty,country"`
	Type             string    `json:"transaction_type" binding:"required,transaction_type"`
	Date             time.Time `json:"transaction_date" binding:"required"`
	Price            float64   `json:"price" binding:"gte=0"`
	Quantity         float64   `json:"quantity" binding:"gte=0"`
	MiscCosts        *float64  `json:"misc_costs" binding:"omitempty,gte=0"`
	BrokerFeePercent *float64  `json:"broker_fee_percent" binding:"omitempty,gte=0,lte=100"`
	TaxPercent       *float64  `json:"tax_percent" binding:"omitempty,gte=0,lte=100"`
	Notes            string    `json:"notes" binding:"max=500"`
}

// toInput converts the request to a service input, applying the form's
// defaults for omitted fields: misc costs 0, broker fee 5%, tax 0%.
func (r *RecordTransactionRequest) toInput() services.RecordTransactionInput {
	input := services.RecordTransactionInput{
		InvestmentID:     r.InvestmentID,
		Name:             r.Name,
		AssetType:        models.AssetType(r.AssetType),
		Country:          models.Country(r.Country),
		Type:             models.TransactionType(r.Type),
		Date:             r.Date,
		Price:            decimal.NewFromFloat(r.Price),
		Quantity:         decimal.NewFromFloat(r.Quantity),
		BrokerFeePercent: defaultBrokerFeePercent,
		Notes:            r.Notes,
	}
	if r.MiscCosts != nil {
		input.MiscCosts = decimal.NewFromFloat(*r.MiscCosts)
	}
	if r.BrokerFeePercent != nil {
		input.BrokerFeePercent = decimal.NewFromFloat(*r.BrokerFeePercent)
	}
	if r.TaxPercent != nil {
		input.TaxPercent = decimal.NewFromFloat(*r.TaxPercent)
	}
	return input
}

// RecordTransaction handles recording a buy or sell transaction.
// @Summary     Record transaction
// @Description Record a buy or sell, creating the investment in the same database transaction when no existing one is named
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordTransaction(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"investment_id":    transaction.InvestmentID,
			"transaction_type": req.Type,
			"quantity":         req.Quantity,
		})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}
