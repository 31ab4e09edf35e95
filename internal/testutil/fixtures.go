package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"niveshak/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestInvestment creates an Equity investment held in India.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string) *models.Investment {
	t.Helper()
	return CreateTestInvestmentWithType(t, db, userID, models.AssetTypeEquity)
}

// CreateTestInvestmentWithType creates an investment with the given asset type.
func CreateTestInvestmentWithType(t *testing.T, db *gorm.DB, userID string, assetType models.AssetType) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Investment %d", nextID()),
		AssetType: assetType,
		Country:   models.CountryIndia,
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestTransaction creates a transaction of the given type with the
// given price and quantity and no costs or percentages.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, investmentID string, txType models.TransactionType, price, quantity float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:       userID,
		InvestmentID: investmentID,
		Type:         txType,
		Date:         time.Now(),
		Price:        decimal.NewFromFloat(price),
		Quantity:     decimal.NewFromFloat(quantity),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
