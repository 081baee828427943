package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EvaluationRequest is the combined input document: a cart and the coupons
// offered against it.
type EvaluationRequest struct {
	Cart    []LineItem `json:"cart" validate:"dive"`
	Coupons []Coupon   `json:"coupons" validate:"dive"`
}

// EvaluationResult is the detailed breakdown of one evaluation.
type EvaluationResult struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	BestCouponIndex *int            `json:"best_coupon_index"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Valid           bool            `json:"valid"`
	ErrorCode       string          `json:"error_code,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// EvaluationReport is an EvaluationResult stamped for rendering and log correlation.
type EvaluationReport struct {
	ID          uuid.UUID `json:"evaluation_id"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	EvaluationResult
}
