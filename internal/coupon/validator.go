package coupon

import (
	"errors"
	"fmt"

	"cart-discount/internal/model"
)

// Validate checks a whole coupon set. A coupon set is valid when:
// - every coupon sets exactly one of percent_discount and amount_discount
// - no category is listed more than once across all coupons
//
// The discount-kind check runs over the full list before the overlap check,
// and both report the first violation in input order.
func Validate(coupons []model.Coupon) error {
	for i, c := range coupons {
		if _, err := Compile(c); err != nil {
			return indexed(i, err)
		}
	}

	return checkOverlap(coupons)
}

// CompileAll validates the coupon set and compiles every coupon into a Rule,
// preserving input order.
func CompileAll(coupons []model.Coupon) ([]Rule, error) {
	if err := Validate(coupons); err != nil {
		return nil, err
	}

	rules := make([]Rule, len(coupons))
	for i, c := range coupons {
		// Validate has already compiled each coupon once.
		rules[i], _ = Compile(c)
	}

	return rules, nil
}

func checkOverlap(coupons []model.Coupon) error {
	capacity := 0
	for _, c := range coupons {
		capacity += len(c.Categories)
	}

	claimed := NewCategorySet(capacity)
	for i, c := range coupons {
		for _, category := range c.Categories {
			if owner, ok := claimed.Claim(category, i); !ok {
				return model.NewDomainError(
					model.ErrCodeCategoryOverlap,
					fmt.Sprintf("%s: category %q listed by coupon %d is already claimed by coupon %d",
						model.ErrCategoryOverlap.Message, category, i, owner),
				)
			}
		}
	}

	return nil
}

func indexed(i int, err error) error {
	var de *model.DomainError
	if !errors.As(err, &de) {
		return fmt.Errorf("coupon %d: %w", i, err)
	}
	return model.NewDomainError(de.Code, fmt.Sprintf("%s (coupon %d)", de.Message, i))
}
