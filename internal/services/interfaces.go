package services

import (
	"time"

	"github.com/shopspring/decimal"

	"niveshak/internal/metrics"
	"niveshak/internal/models"
	"niveshak/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionWithMetrics pairs a stored transaction with its derived figures.
type TransactionWithMetrics struct {
	models.Transaction
	Metrics metrics.TransactionMetrics `json:"metrics"`
}

// InvestmentDetail is the per-investment detail view payload: the investment,
// its aggregate position, and its full transaction history with per-row
// derived figures, newest first.
type InvestmentDetail struct {
	Investment   models.Investment          `json:"investment"`
	Metrics      metrics.InvestmentMetrics  `json:"metrics"`
	Transactions []TransactionWithMetrics   `json:"transactions"`
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID, name string, assetType models.AssetType, country models.Country) (*models.Investment, error)
	GetUserInvestments(userID string) ([]models.Investment, error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	GetInvestmentDetail(userID, investmentID string, now time.Time) (*InvestmentDetail, error)
}

// RecordTransactionInput carries everything needed to record a transaction.
// When InvestmentID is empty a new investment is created from Name,
// AssetType, and Country in the same database transaction as the row itself.
type RecordTransactionInput struct {
	InvestmentID     string
	Name             string
	AssetType        models.AssetType
	Country          models.Country
	Type             models.TransactionType
	Date             time.Time
	Price            decimal.Decimal
	Quantity         decimal.Decimal
	MiscCosts        decimal.Decimal
	BrokerFeePercent decimal.Decimal
	TaxPercent       decimal.Decimal
	Notes            string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	RecordTransaction(userID string, input RecordTransactionInput) (*models.Transaction, error)
	GetInvestmentTransactions(userID, investmentID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// InvestmentSummary is one dashboard row: an investment plus its
// dashboard-variant aggregation.
type InvestmentSummary struct {
	models.Investment
	Summary metrics.Summary `json:"summary"`
}

// Dashboard is the aggregated portfolio payload for the dashboard view.
type Dashboard struct {
	TotalValue      decimal.Decimal          `json:"total_value"`
	TotalProfit     decimal.Decimal          `json:"total_profit"`
	InvestmentCount int                      `json:"investment_count"`
	Allocation      []metrics.CategoryBucket `json:"allocation"`
	Investments     []InvestmentSummary      `json:"investments"`
}

// PortfolioServicer defines the contract for portfolio-level aggregation.
type PortfolioServicer interface {
	GetDashboard(userID string) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
