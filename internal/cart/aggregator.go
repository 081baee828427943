// Package cart reduces a cart into the per-category totals the discount
// evaluator works on.
package cart

import (
	"cart-discount/internal/model"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the spend and item count of one category.
type CategoryTotal struct {
	Total decimal.Decimal
	Count int
}

// Summary is the aggregated view of a cart.
type Summary struct {
	Subtotal   decimal.Decimal
	Categories map[string]CategoryTotal
}

// Summarize computes the cart subtotal and per-category totals.
// An empty or nil cart yields a zero subtotal and no categories.
func Summarize(items []model.LineItem) Summary {
	summary := Summary{
		Subtotal:   decimal.Zero,
		Categories: make(map[string]CategoryTotal),
	}

	for _, item := range items {
		ct := summary.Categories[item.Category]
		ct.Total = ct.Total.Add(item.Price)
		ct.Count++
		summary.Categories[item.Category] = ct

		summary.Subtotal = summary.Subtotal.Add(item.Price)
	}

	return summary
}

// Lookup returns the totals for a category and whether it is in the cart at all.
func (s Summary) Lookup(category string) (CategoryTotal, bool) {
	ct, ok := s.Categories[category]
	return ct, ok
}
