package service

import (
	"context"
	"time"

	"cart-discount/internal/metrics"
	"cart-discount/internal/model"
	"cart-discount/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// evaluationService implements EvaluationService.
type evaluationService struct {
	recorder Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

// NewEvaluationService creates a new evaluation service. recorder may be nil.
func NewEvaluationService(recorder Recorder, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		recorder: recorder,
		now:      time.Now,
		logger:   logger.With().Str("service", "evaluation").Logger(),
	}
}

// Evaluate prices the cart with the best applicable coupon.
func (s *evaluationService) Evaluate(ctx context.Context, req *model.EvaluationRequest) (*model.EvaluationReport, error) {
	if req == nil {
		return nil, model.ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := pricing.Evaluate(req.Cart, req.Coupons)

	report := &model.EvaluationReport{
		ID:               uuid.New(),
		EvaluatedAt:      s.now().UTC(),
		EvaluationResult: result,
	}

	if result.Valid {
		event := s.logger.Info().
			Str("evaluation_id", report.ID.String()).
			Int("items", len(req.Cart)).
			Int("coupons", len(req.Coupons)).
			Str("subtotal", result.Subtotal.String()).
			Str("discount", result.DiscountAmount.String()).
			Str("final_price", result.FinalPrice.String())
		if result.BestCouponIndex != nil {
			event = event.Int("best_coupon", *result.BestCouponIndex)
		}
		event.Msg("cart evaluated")
	} else {
		s.logger.Warn().
			Str("evaluation_id", report.ID.String()).
			Int("coupons", len(req.Coupons)).
			Str("error_code", result.ErrorCode).
			Str("reason", result.Error).
			Msg("coupon set rejected")
	}

	if s.recorder != nil {
		subtotal, _ := result.Subtotal.Float64()
		discount, _ := result.DiscountAmount.Float64()
		s.recorder.ObserveEvaluation(outcomeOf(result), subtotal, discount)
	}

	return report, nil
}

// outcomeOf maps a result onto its metrics outcome label.
func outcomeOf(result model.EvaluationResult) string {
	switch {
	case result.Valid && result.BestCouponIndex != nil:
		return metrics.OutcomeDiscounted
	case result.Valid:
		return metrics.OutcomeUndiscounted
	case result.ErrorCode == model.ErrCodeCategoryOverlap:
		return metrics.OutcomeCategoryOverlap
	default:
		return metrics.OutcomeMalformedCoupon
	}
}
