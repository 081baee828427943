// Package metrics exposes Prometheus collectors describing evaluation outcomes.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation outcome label values.
const (
	OutcomeDiscounted      = "discounted"
	OutcomeUndiscounted    = "undiscounted"
	OutcomeMalformedCoupon = "malformed_coupon"
	OutcomeCategoryOverlap = "category_overlap"
)

// DefaultNamespace prefixes every collector when none is configured.
const DefaultNamespace = "cart_discount"

// EvaluationMetrics groups Prometheus collectors for evaluation observability.
type EvaluationMetrics struct {
	EvaluationsTotal *prometheus.CounterVec
	DiscountAmount   prometheus.Histogram
	CartSubtotal     prometheus.Histogram
}

// NewEvaluationMetrics registers and returns evaluation collectors.
func NewEvaluationMetrics(namespace string, reg prometheus.Registerer) *EvaluationMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	moneyBuckets := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

	m := &EvaluationMetrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Count of cart evaluations by outcome.",
		}, []string{"outcome"}),
		DiscountAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discount_amount",
			Help:      "Discount granted by the winning coupon of valid evaluations.",
			Buckets:   moneyBuckets,
		}),
		CartSubtotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cart_subtotal",
			Help:      "Cart subtotal before discount for every evaluation.",
			Buckets:   moneyBuckets,
		}),
	}

	m.EvaluationsTotal = mustRegister(reg, m.EvaluationsTotal)
	m.DiscountAmount = mustRegister(reg, m.DiscountAmount)
	m.CartSubtotal = mustRegister(reg, m.CartSubtotal)

	return m
}

// ObserveEvaluation records one evaluation. discount is only observed for
// valid outcomes.
func (m *EvaluationMetrics) ObserveEvaluation(outcome string, subtotal, discount float64) {
	m.EvaluationsTotal.WithLabelValues(outcome).Inc()
	m.CartSubtotal.Observe(subtotal)

	switch outcome {
	case OutcomeDiscounted, OutcomeUndiscounted:
		m.DiscountAmount.Observe(discount)
	}
}

// WriteTextfile flushes everything gathered by g to path in the node
// exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

// mustRegister registers c, reusing an identical collector that is already
// registered.
func mustRegister[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
