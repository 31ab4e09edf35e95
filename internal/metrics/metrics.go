// Package metrics computes derived portfolio figures from transaction lists.
// Every function is a pure fold over its input: no database access, no clock
// reads (evaluation time is always a parameter), and nothing is ever cached
// or persisted. Callers recompute on every read.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"niveshak/internal/models"
)

// Holding period classifications.
const (
	TermLong  = "Long Term"
	TermShort = "Short Term"
)

var hundred = decimal.NewFromInt(100)

// InvestmentMetrics is the aggregate position for a single investment.
type InvestmentMetrics struct {
	CurrentQty     decimal.Decimal `json:"current_qty"`
	AvgBuyPrice    decimal.Decimal `json:"avg_buy_price"`
	TotalBuyValue  decimal.Decimal `json:"total_buy_value"`
	TotalSellValue decimal.Decimal `json:"total_sell_value"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

// Aggregate folds all transactions of one investment into position metrics.
// Buy value includes miscellaneous costs, sell value deducts them. The
// result does not depend on transaction order. A negative current quantity
// is a valid state: sells exceeding recorded buys are not rejected.
func Aggregate(txs []models.Transaction) InvestmentMetrics {
	var buyValue, buyQty, sellValue, sellQty decimal.Decimal

	for _, tx := range txs {
		amount := tx.Price.Mul(tx.Quantity)
		if tx.Type == models.TransactionTypeBuy {
			buyValue = buyValue.Add(amount).Add(tx.MiscCosts)
			buyQty = buyQty.Add(tx.Quantity)
		} else {
			sellValue = sellValue.Add(amount).Sub(tx.MiscCosts)
			sellQty = sellQty.Add(tx.Quantity)
		}
	}

	m := InvestmentMetrics{
		CurrentQty:     buyQty.Sub(sellQty),
		TotalBuyValue:  buyValue,
		TotalSellValue: sellValue,
		TotalProfit:    sellValue.Sub(buyValue),
	}
	if buyQty.IsPositive() {
		m.AvgBuyPrice = buyValue.Div(buyQty)
	}
	return m
}

// Summary is the dashboard-level aggregation for one investment.
type Summary struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// Summarize computes the dashboard variant of the aggregation: total value
// is all buy amounts including misc costs, and profit accumulates sell
// proceeds net of misc costs before the total value is subtracted at the
// end. For any transaction set Summarize(txs).TotalProfit equals
// Aggregate(txs).TotalProfit.
func Summarize(txs []models.Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		amount := tx.Price.Mul(tx.Quantity)
		if tx.Type == models.TransactionTypeBuy {
			s.TotalValue = s.TotalValue.Add(amount).Add(tx.MiscCosts)
			s.TotalQuantity = s.TotalQuantity.Add(tx.Quantity)
		} else {
			s.TotalProfit = s.TotalProfit.Add(amount).Sub(tx.MiscCosts)
			s.TotalQuantity = s.TotalQuantity.Sub(tx.Quantity)
		}
	}

	s.TotalProfit = s.TotalProfit.Sub(s.TotalValue)
	return s
}

// TransactionMetrics holds per-transaction derived figures for the
// detail-view transaction table.
type TransactionMetrics struct {
	TotalAmount       decimal.Decimal `json:"total_amount"`
	BrokerFee         decimal.Decimal `json:"broker_fee"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	HoldingPeriodDays int             `json:"holding_period_days"`
	TermType          string          `json:"term_type"`
	FinancialYear     string          `json:"financial_year"`
	Profit            decimal.Decimal `json:"profit"`
	ProfitAfterTax    decimal.Decimal `json:"profit_after_tax"`
}

// ComputeTransaction derives the tax, term, and fiscal-year figures for a
// single transaction evaluated at the given time. Holdings older than 365
// days classify as long term. Fiscal years run April through March.
func ComputeTransaction(tx models.Transaction, now time.Time) TransactionMetrics {
	amount := tx.Price.Mul(tx.Quantity)
	brokerFee := amount.Mul(tx.BrokerFeePercent).Div(hundred)
	taxAmount := amount.Mul(tx.TaxPercent).Div(hundred)

	days := int(math.Floor(now.Sub(tx.Date).Hours() / 24))
	term := TermShort
	if days > 365 {
		term = TermLong
	}

	profit := decimal.Zero
	if tx.Type == models.TransactionTypeSell {
		profit = amount.Sub(tx.MiscCosts).Sub(brokerFee).Sub(taxAmount)
	}

	return TransactionMetrics{
		TotalAmount:       amount,
		BrokerFee:         brokerFee,
		TaxAmount:         taxAmount,
		HoldingPeriodDays: days,
		TermType:          term,
		FinancialYear:     FinancialYear(tx.Date),
		Profit:            profit,
		// TODO: Profit already deducts the tax amount for sells; review
		// whether subtracting it again here is intended before changing it.
		ProfitAfterTax: profit.Sub(taxAmount),
	}
}

// FinancialYear returns the April-to-March fiscal year label for a date,
// e.g. "FY 2024-2025" for any date from 2024-04-01 through 2025-03-31.
func FinancialYear(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.April {
		return fmt.Sprintf("FY %d-%d", year, year+1)
	}
	return fmt.Sprintf("FY %d-%d", year-1, year)
}
