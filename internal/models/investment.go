package models

// AssetType is the category an investment belongs to.
type AssetType string

const (
	AssetTypeEquity      AssetType = "Equity"
	AssetTypeCommodity   AssetType = "Commodity"
	AssetTypeBonds       AssetType = "Bonds"
	AssetTypeRealEstate  AssetType = "Real Estate"
	AssetTypeMutualFunds AssetType = "Mutual Funds"
)

// Country is the market an investment is held in.
type Country string

const (
	CountryIndia Country = "India"
	CountryUS    Country = "US"
)

// Investment represents a named holding a user records transactions against.
// It is created once (explicitly or by the first transaction referencing it)
// and never edited afterwards.
type Investment struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	AssetType AssetType `gorm:"not null" json:"asset_type"`
	Country   Country   `gorm:"not null" json:"country"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:InvestmentID" json:"transactions,omitempty"`
}
