package coupon

import (
	"fmt"

	"cart-discount/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is the benefit a coupon grants on a single category total.
// It is implemented by Percent and Amount only.
type Discount interface {
	// Apply returns the discount granted against a category total.
	Apply(total decimal.Decimal) decimal.Decimal

	discount()
}

// Percent takes a percentage of the category total.
type Percent struct {
	Rate decimal.Decimal
}

// Apply returns total * rate / 100.
func (p Percent) Apply(total decimal.Decimal) decimal.Decimal {
	return total.Mul(p.Rate).Div(hundred)
}

func (Percent) discount() {}

// Amount takes a flat amount off, never more than the category total.
type Amount struct {
	Value decimal.Decimal
}

// Apply returns min(value, total).
func (a Amount) Apply(total decimal.Decimal) decimal.Decimal {
	return decimal.Min(a.Value, total)
}

func (Amount) discount() {}

// Thresholds gate a coupon per category. Nil fields impose no constraint.
type Thresholds struct {
	MinItems  *int
	MinAmount *decimal.Decimal
}

// Met reports whether a category with the given total and item count qualifies.
func (t Thresholds) Met(total decimal.Decimal, count int) bool {
	if t.MinItems != nil && count < *t.MinItems {
		return false
	}
	if t.MinAmount != nil && total.LessThan(*t.MinAmount) {
		return false
	}
	return true
}

// Rule is the compiled, fixed-shape form of a coupon.
type Rule struct {
	Categories []string
	Discount   Discount
	Thresholds Thresholds
}

// NewPercentRule builds a percentage rule.
func NewPercentRule(rate decimal.Decimal, thresholds Thresholds, categories ...string) Rule {
	return Rule{Categories: categories, Discount: Percent{Rate: rate}, Thresholds: thresholds}
}

// NewAmountRule builds a flat-amount rule.
func NewAmountRule(value decimal.Decimal, thresholds Thresholds, categories ...string) Rule {
	return Rule{Categories: categories, Discount: Amount{Value: value}, Thresholds: thresholds}
}

// Compile converts a coupon definition into a Rule. It fails with
// model.ErrMalformedCoupon unless exactly one discount kind is set.
func Compile(c model.Coupon) (Rule, error) {
	thresholds := Thresholds{
		MinItems:  c.MinimumNumItemsRequired,
		MinAmount: c.MinimumAmountRequired,
	}

	switch {
	case c.PercentDiscount != nil && c.AmountDiscount != nil:
		return Rule{}, malformed("sets both percent_discount and amount_discount")
	case c.PercentDiscount != nil:
		return NewPercentRule(*c.PercentDiscount, thresholds, c.Categories...), nil
	case c.AmountDiscount != nil:
		return NewAmountRule(*c.AmountDiscount, thresholds, c.Categories...), nil
	default:
		return Rule{}, malformed("sets neither percent_discount nor amount_discount")
	}
}

func malformed(reason string) *model.DomainError {
	return model.NewDomainError(
		model.ErrCodeMalformedCoupon,
		fmt.Sprintf("%s: coupon %s", model.ErrMalformedCoupon.Message, reason),
	)
}
