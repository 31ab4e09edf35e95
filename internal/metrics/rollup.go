package metrics

import (
	"github.com/shopspring/decimal"

	"niveshak/internal/models"
)

// Position pairs an investment's asset type with its summarized value and
// profit, the inputs to the category rollup.
type Position struct {
	AssetType models.AssetType
	Value     decimal.Decimal
	Profit    decimal.Decimal
}

// CategoryBucket is the accumulated value and profit for one asset type.
type CategoryBucket struct {
	AssetType models.AssetType `json:"asset_type"`
	Value     decimal.Decimal  `json:"value"`
	Profit    decimal.Decimal  `json:"profit"`
}

// Rollup groups positions by asset type in first-seen order. Categories
// with no positions do not appear in the output.
func Rollup(positions []Position) []CategoryBucket {
	buckets := make([]CategoryBucket, 0, len(positions))
	index := make(map[models.AssetType]int, len(positions))

	for _, p := range positions {
		i, ok := index[p.AssetType]
		if !ok {
			i = len(buckets)
			index[p.AssetType] = i
			buckets = append(buckets, CategoryBucket{AssetType: p.AssetType})
		}
		buckets[i].Value = buckets[i].Value.Add(p.Value)
		buckets[i].Profit = buckets[i].Profit.Add(p.Profit)
	}

	return buckets
}

// Totals reduces category buckets to grand totals for the dashboard summary.
func Totals(buckets []CategoryBucket) (value, profit decimal.Decimal) {
	for _, b := range buckets {
		value = value.Add(b.Value)
		profit = profit.Add(b.Profit)
	}
	return value, profit
}
