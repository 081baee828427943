// Package pricing finds the best coupon for a cart and prices the cart with it.
//
// Everything here is a pure function of its arguments: no logging, no I/O and
// no state shared between calls, so concurrent callers need no locking.
package pricing

import (
	"cart-discount/internal/cart"
	"cart-discount/internal/coupon"

	"github.com/shopspring/decimal"
)

// Yield returns the largest discount a rule grants on the cart. Each listed
// category is considered on its own and the best one wins; categories that are
// absent from the cart or miss a threshold contribute nothing.
func Yield(rule coupon.Rule, summary cart.Summary) decimal.Decimal {
	best := decimal.Zero

	for _, category := range rule.Categories {
		ct, ok := summary.Lookup(category)
		if !ok {
			continue
		}
		if !rule.Thresholds.Met(ct.Total, ct.Count) {
			continue
		}

		if d := rule.Discount.Apply(ct.Total); d.GreaterThan(best) {
			best = d
		}
	}

	return best
}

// Best picks the rule with the strictly greatest yield. On a tie the earlier
// rule is kept. When no rule yields a positive discount the index is nil and
// the discount is zero.
func Best(rules []coupon.Rule, summary cart.Summary) (*int, decimal.Decimal) {
	var index *int
	best := decimal.Zero

	for i, rule := range rules {
		if y := Yield(rule, summary); y.GreaterThan(best) {
			best = y
			idx := i
			index = &idx
		}
	}

	return index, best
}
