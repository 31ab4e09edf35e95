package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// Transaction records a single buy or sell against an investment.
// Rows are immutable once recorded; there is no edit or delete flow.
// Monetary columns are NUMERIC and surface as decimals to keep the
// derived-metric arithmetic exact.
type Transaction struct {
	Base
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	InvestmentID     string          `gorm:"type:uuid;not null;index" json:"investment_id"`
	Type             TransactionType `gorm:"column:transaction_type;not null" json:"transaction_type"`
	Date             time.Time       `gorm:"column:transaction_date;not null" json:"transaction_date"`
	Price            decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity         decimal.Decimal `gorm:"type:numeric;not null" json:"quantity"`
	MiscCosts        decimal.Decimal `gorm:"type:numeric;not null" json:"misc_costs"`
	BrokerFeePercent decimal.Decimal `gorm:"type:numeric;not null" json:"broker_fee_percent"`
	TaxPercent       decimal.Decimal `gorm:"type:numeric;not null" json:"tax_percent"`
	Notes            string          `json:"notes,omitempty"`

	// Relationships
	Investment Investment `gorm:"foreignKey:InvestmentID" json:"investment,omitempty"`
}
