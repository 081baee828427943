package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"cart-discount/internal/config"
	"cart-discount/internal/metrics"
	"cart-discount/internal/model"
	"cart-discount/internal/render"
	"cart-discount/internal/service"
	"cart-discount/internal/source"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

// errInvalidCoupons marks a completed evaluation whose coupon set was rejected.
var errInvalidCoupons = errors.New("coupon set is invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return
	case errors.Is(err, errInvalidCoupons):
		stop()
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	// Load configuration
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Debug().Msg("starting cart evaluation")

	// Load documents
	loader := source.NewFileLoader(stdin, logger)
	req, err := loadRequest(ctx, loader, cfg.Input)
	if err != nil {
		return err
	}

	// Initialize metrics and service
	registry := prometheus.NewRegistry()
	evalMetrics := metrics.NewEvaluationMetrics(cfg.Metrics.Namespace, registry)
	evaluator := service.NewEvaluationService(evalMetrics, logger)

	report, err := evaluator.Evaluate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to evaluate cart: %w", err)
	}

	if err := render.Write(stdout, cfg.Output.Format, report); err != nil {
		return err
	}

	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath, registry); err != nil {
			logger.Error().Err(err).Msg("failed to flush metrics")
			return err
		}
		logger.Debug().Str("file", cfg.Metrics.TextfilePath).Msg("metrics flushed")
	}

	if !report.Valid {
		return errInvalidCoupons
	}
	return nil
}

// loadRequest reads either the combined request document or the separate
// cart and coupons documents.
func loadRequest(ctx context.Context, loader source.Loader, in config.InputConfig) (*model.EvaluationRequest, error) {
	if in.UsesRequestFile() {
		return loader.LoadRequest(ctx, in.RequestPath)
	}

	items, err := loader.LoadCart(ctx, in.CartPath)
	if err != nil {
		return nil, err
	}
	coupons, err := loader.LoadCoupons(ctx, in.CouponsPath)
	if err != nil {
		return nil, err
	}

	return &model.EvaluationRequest{Cart: items, Coupons: coupons}, nil
}
