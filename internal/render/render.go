// Package render writes evaluation reports for humans and scripts.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"cart-discount/internal/model"
)

// Supported report formats.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatSimple = "simple"
)

// Invalid is printed in simple format when the coupon set is rejected.
const Invalid = "invalid"

// Write renders report to w in the given format.
func Write(w io.Writer, format string, report *model.EvaluationReport) error {
	if report == nil {
		return model.ErrNilRequest
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	case FormatSimple:
		return writeSimple(w, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// writeJSON writes the report as indented JSON.
func writeJSON(w io.Writer, report *model.EvaluationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func writeText(w io.Writer, report *model.EvaluationReport) error {
	ew := &errWriter{w: w}

	ew.printf("Subtotal: %s\n", report.Subtotal.StringFixed(2))
	if !report.Valid {
		ew.printf("Invalid coupon set: %s\n", report.Error)
		return ew.err
	}

	if report.BestCouponIndex != nil {
		ew.printf("Best coupon: #%d\n", *report.BestCouponIndex)
	} else {
		ew.printf("Best coupon: none\n")
	}
	ew.printf("Discount: %s\n", report.DiscountAmount.StringFixed(2))
	ew.printf("Final price: %s\n", report.FinalPrice.StringFixed(2))

	return ew.err
}

func writeSimple(w io.Writer, report *model.EvaluationReport) error {
	value := Invalid
	if report.Valid {
		value = report.FinalPrice.StringFixed(2)
	}
	if _, err := fmt.Fprintln(w, value); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	if _, err := fmt.Fprintf(ew.w, format, args...); err != nil {
		ew.err = fmt.Errorf("failed to write report: %w", err)
	}
}
