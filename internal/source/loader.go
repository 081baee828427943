// Package source reads cart and coupon documents that an upstream collaborator
// has already materialised to disk or piped to stdin.
package source

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"cart-discount/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StdinPath names standard input as a document source.
const StdinPath = "-"

// Loader defines the interface for loading evaluation input documents.
type Loader interface {
	// LoadRequest reads a combined {"cart": [...], "coupons": [...]} document.
	LoadRequest(ctx context.Context, path string) (*model.EvaluationRequest, error)

	// LoadCart reads a JSON array of line items.
	LoadCart(ctx context.Context, path string) ([]model.LineItem, error)

	// LoadCoupons reads a JSON array of coupon definitions.
	LoadCoupons(ctx context.Context, path string) ([]model.Coupon, error)
}

// fileLoader implements Loader for plain or gzipped JSON files.
type fileLoader struct {
	stdin    io.Reader
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewFileLoader creates a new file-based document loader. stdin is read when
// a path is "-"; pass nil to use os.Stdin.
func NewFileLoader(stdin io.Reader, logger zerolog.Logger) Loader {
	if stdin == nil {
		stdin = os.Stdin
	}

	return &fileLoader{
		stdin:    stdin,
		validate: NewValidator(),
		logger:   logger.With().Str("component", "document-loader").Logger(),
	}
}

// NewValidator returns a struct validator that understands decimal fields.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// LoadRequest reads a combined request document.
func (l *fileLoader) LoadRequest(ctx context.Context, path string) (*model.EvaluationRequest, error) {
	var req model.EvaluationRequest
	if err := l.load(ctx, path, &req); err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("items", len(req.Cart)).
		Int("coupons", len(req.Coupons)).
		Msg("request document loaded")

	return &req, nil
}

// LoadCart reads a cart document.
func (l *fileLoader) LoadCart(ctx context.Context, path string) ([]model.LineItem, error) {
	var doc struct {
		Items []model.LineItem `validate:"dive"`
	}
	if err := l.load(ctx, path, &doc.Items); err != nil {
		return nil, err
	}
	if err := l.check(path, doc); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Int("items", len(doc.Items)).Msg("cart document loaded")

	return doc.Items, nil
}

// LoadCoupons reads a coupons document.
func (l *fileLoader) LoadCoupons(ctx context.Context, path string) ([]model.Coupon, error) {
	var doc struct {
		Coupons []model.Coupon `validate:"dive"`
	}
	if err := l.load(ctx, path, &doc.Coupons); err != nil {
		return nil, err
	}
	if err := l.check(path, doc); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Int("coupons", len(doc.Coupons)).Msg("coupons document loaded")

	return doc.Coupons, nil
}

// load opens path, decodes it into dst and, when dst is a struct, validates it.
func (l *fileLoader) load(ctx context.Context, path string, dst interface{}) error {
	if err := ctx.Err(); err != nil {
		l.logger.Warn().Str("file", path).Msg("document loading cancelled")
		return err
	}

	l.logger.Debug().Str("file", path).Msg("loading document")

	r, closeFn, err := l.open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open document")
		return err
	}
	defer closeFn()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode document")
		return invalidDocument(path, fmt.Sprintf("malformed JSON: %v", err))
	}

	if reflect.Indirect(reflect.ValueOf(dst)).Kind() == reflect.Struct {
		return l.check(path, dst)
	}
	return nil
}

func (l *fileLoader) check(path string, doc interface{}) error {
	if err := l.validate.Struct(doc); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("document failed validation")
		return invalidDocument(path, describe(err))
	}
	return nil
}

// open returns a reader for path, transparently decompressing .gz files.
func (l *fileLoader) open(path string) (io.Reader, func(), error) {
	var (
		raw     io.Reader
		closers []io.Closer
	)

	if path == StdinPath {
		raw = l.stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open document %s: %w", path, err)
		}
		raw = file
		closers = append(closers, file)
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}

	if !strings.HasSuffix(path, ".gz") {
		return raw, closeAll, nil
	}

	gzipReader, err := gzip.NewReader(raw)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	closers = append(closers, gzipReader)

	return gzipReader, closeAll, nil
}

func invalidDocument(path, detail string) *model.DomainError {
	return model.NewDomainError(
		model.ErrCodeInvalidDocument,
		fmt.Sprintf("%s: %s: %s", model.ErrInvalidDocument.Message, path, detail),
	)
}

// describe flattens validator errors into one readable line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s violates %s", fe.Namespace(), rule))
	}
	return strings.Join(parts, "; ")
}
