// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_type", validateAssetType)
		_ = v.RegisterValidation("country", validateCountry)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Equity", "Commodity", "Bonds", "Real Estate", "Mutual Funds":
		return true
	}
	return false
}

func validateCountry(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "India", "US":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}
