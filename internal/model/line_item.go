package model

import "github.com/shopspring/decimal"

// LineItem represents a single priced, categorised item in a cart.
type LineItem struct {
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Category string          `json:"category" validate:"required"`
}

// Coupon is a coupon definition as supplied by the upstream data source.
// Exactly one of PercentDiscount and AmountDiscount is expected to be set;
// the evaluator rejects the whole request otherwise.
type Coupon struct {
	Categories              []string         `json:"categories" validate:"required,min=1,dive,required"`
	PercentDiscount         *decimal.Decimal `json:"percent_discount" validate:"omitempty,gte=0,lte=100"`
	AmountDiscount          *decimal.Decimal `json:"amount_discount" validate:"omitempty,gte=0"`
	MinimumNumItemsRequired *int             `json:"minimum_num_items_required" validate:"omitempty,gt=0"`
	MinimumAmountRequired   *decimal.Decimal `json:"minimum_amount_required" validate:"omitempty,gte=0"`
}
