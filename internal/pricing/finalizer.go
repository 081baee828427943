package pricing

import (
	"errors"

	"cart-discount/internal/cart"
	"cart-discount/internal/coupon"
	"cart-discount/internal/model"

	"github.com/shopspring/decimal"
)

// FinalPrice returns the cart total after the best coupon. ok is false when the
// coupon set is invalid, in which case no price is returned.
func FinalPrice(items []model.LineItem, coupons []model.Coupon) (decimal.Decimal, bool) {
	result := Evaluate(items, coupons)
	if !result.Valid {
		return decimal.Decimal{}, false
	}
	return result.FinalPrice, true
}

// Evaluate prices the cart and returns the full breakdown. An invalid coupon
// set yields Valid=false with the reason, and the cart charged in full.
func Evaluate(items []model.LineItem, coupons []model.Coupon) model.EvaluationResult {
	summary := cart.Summarize(items)

	rules, err := coupon.CompileAll(coupons)
	if err != nil {
		return invalid(summary.Subtotal, err)
	}

	index, discount := Best(rules, summary)

	return model.EvaluationResult{
		Subtotal:        summary.Subtotal,
		BestCouponIndex: index,
		DiscountAmount:  discount,
		FinalPrice:      summary.Subtotal.Sub(discount),
		Valid:           true,
	}
}

func invalid(subtotal decimal.Decimal, err error) model.EvaluationResult {
	code := model.ErrCodeInternalError
	var de *model.DomainError
	if errors.As(err, &de) {
		code = de.Code
	}

	return model.EvaluationResult{
		Subtotal:       subtotal,
		DiscountAmount: decimal.Zero,
		FinalPrice:     subtotal,
		Valid:          false,
		ErrorCode:      code,
		Error:          err.Error(),
	}
}
