package service

import (
	"context"

	"cart-discount/internal/model"
)

// EvaluationService defines operations for pricing carts against coupons.
type EvaluationService interface {
	// Evaluate prices the request's cart with its best coupon and returns a
	// stamped report. An invalid coupon set is reported, not returned as error.
	Evaluate(ctx context.Context, req *model.EvaluationRequest) (*model.EvaluationReport, error)
}

// Recorder receives one observation per completed evaluation.
type Recorder interface {
	ObserveEvaluation(outcome string, subtotal, discount float64)
}
