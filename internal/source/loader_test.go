package source

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cart-discount/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFive = `{
  "cart": [
    {"price": 2.00, "category": "fruit"},
    {"price": 8.00, "category": "fruit"},
    {"price": 20.00, "category": "toy"},
    {"price": 5.00, "category": "clothing"}
  ],
  "coupons": [
    {"categories": ["clothing", "toy"], "percent_discount": null, "amount_discount": 6,
     "minimum_num_items_required": null, "minimum_amount_required": null},
    {"categories": ["fruit"], "percent_discount": 15, "amount_discount": null,
     "minimum_num_items_required": 2, "minimum_amount_required": 10.00}
  ]
}`

// createTestDocument writes content to a file in a temp dir, gzipping it when
// the name ends in .gz.
func createTestDocument(t *testing.T, filename, content string) string {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	if !strings.HasSuffix(filename, ".gz") {
		_, err = file.WriteString(content)
		require.NoError(t, err)
		return filePath
	}

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	_, err = gzipWriter.Write([]byte(content))
	require.NoError(t, err)

	return filePath
}

func TestFileLoader_LoadRequest_Success(t *testing.T) {
	for _, name := range []string{"request.json", "request.json.gz"} {
		t.Run(name, func(t *testing.T) {
			loader := NewFileLoader(nil, zerolog.Nop())
			filePath := createTestDocument(t, name, scenarioFive)

			req, err := loader.LoadRequest(context.Background(), filePath)

			require.NoError(t, err)
			require.NotNil(t, req)
			require.Len(t, req.Cart, 4)
			require.Len(t, req.Coupons, 2)

			assert.True(t, decimal.RequireFromString("20").Equal(req.Cart[2].Price))
			assert.Equal(t, "toy", req.Cart[2].Category)

			first := req.Coupons[0]
			assert.Equal(t, []string{"clothing", "toy"}, first.Categories)
			assert.Nil(t, first.PercentDiscount)
			require.NotNil(t, first.AmountDiscount)
			assert.True(t, decimal.RequireFromString("6").Equal(*first.AmountDiscount))
			assert.Nil(t, first.MinimumNumItemsRequired)

			second := req.Coupons[1]
			require.NotNil(t, second.MinimumNumItemsRequired)
			assert.Equal(t, 2, *second.MinimumNumItemsRequired)
			require.NotNil(t, second.MinimumAmountRequired)
			assert.True(t, decimal.RequireFromString("10").Equal(*second.MinimumAmountRequired))
		})
	}
}

func TestFileLoader_LoadRequest_Stdin(t *testing.T) {
	loader := NewFileLoader(strings.NewReader(`{"cart": [], "coupons": []}`), zerolog.Nop())

	req, err := loader.LoadRequest(context.Background(), StdinPath)

	require.NoError(t, err)
	assert.Empty(t, req.Cart)
	assert.Empty(t, req.Coupons)
}

func TestFileLoader_LoadRequest_ShapeIsNotCouponValidity(t *testing.T) {
	// Both discount kinds and overlapping categories are the evaluator's
	// concern; the loader must let them through.
	loader := NewFileLoader(strings.NewReader(`{
		"cart": [{"price": 10, "category": "fruit"}],
		"coupons": [
			{"categories": ["fruit"], "percent_discount": 15, "amount_discount": 10},
			{"categories": ["fruit"]}
		]
	}`), zerolog.Nop())

	req, err := loader.LoadRequest(context.Background(), StdinPath)

	require.NoError(t, err)
	assert.Len(t, req.Coupons, 2)
}

func TestFileLoader_LoadRequest_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "Malformed JSON",
			content:  `{"cart": [`,
			errorMsg: "malformed JSON",
		},
		{
			name:     "Unknown field",
			content:  `{"cart": [], "coupons": [], "discounts": []}`,
			errorMsg: "unknown field",
		},
		{
			name:     "Negative price",
			content:  `{"cart": [{"price": -1, "category": "fruit"}], "coupons": []}`,
			errorMsg: "Price violates gte=0",
		},
		{
			name:     "Missing category",
			content:  `{"cart": [{"price": 1}], "coupons": []}`,
			errorMsg: "Category violates required",
		},
		{
			name:     "Percent above 100",
			content:  `{"cart": [], "coupons": [{"categories": ["fruit"], "percent_discount": 150}]}`,
			errorMsg: "PercentDiscount violates lte=100",
		},
		{
			name:     "Negative amount",
			content:  `{"cart": [], "coupons": [{"categories": ["fruit"], "amount_discount": -5}]}`,
			errorMsg: "AmountDiscount violates gte=0",
		},
		{
			name:     "Empty categories",
			content:  `{"cart": [], "coupons": [{"categories": [], "amount_discount": 5}]}`,
			errorMsg: "Categories violates min=1",
		},
		{
			name:     "Blank category name",
			content:  `{"cart": [], "coupons": [{"categories": [""], "amount_discount": 5}]}`,
			errorMsg: "violates required",
		},
		{
			name:     "Zero minimum item count",
			content:  `{"cart": [], "coupons": [{"categories": ["fruit"], "amount_discount": 5, "minimum_num_items_required": 0}]}`,
			errorMsg: "MinimumNumItemsRequired violates gt=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewFileLoader(strings.NewReader(tt.content), zerolog.Nop())

			req, err := loader.LoadRequest(context.Background(), StdinPath)

			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, model.ErrInvalidDocument), "unexpected error: %v", err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestFileLoader_LoadCartAndCoupons(t *testing.T) {
	loader := NewFileLoader(nil, zerolog.Nop())
	ctx := context.Background()

	cartPath := createTestDocument(t, "cart.json", `[{"price": "2.00", "category": "fruit"}, {"price": 8, "category": "fruit"}]`)
	couponsPath := createTestDocument(t, "coupons.json.gz", `[{"categories": ["fruit"], "amount_discount": 3}]`)

	items, err := loader.LoadCart(ctx, cartPath)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, decimal.RequireFromString("2").Equal(items[0].Price))

	coupons, err := loader.LoadCoupons(ctx, couponsPath)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, []string{"fruit"}, coupons[0].Categories)

	badCart := createTestDocument(t, "bad_cart.json", `[{"price": -2, "category": "fruit"}]`)
	_, err = loader.LoadCart(ctx, badCart)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidDocument))

	badCoupons := createTestDocument(t, "bad_coupons.json", `[{"categories": ["fruit"], "percent_discount": 101}]`)
	_, err = loader.LoadCoupons(ctx, badCoupons)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidDocument))
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(nil, zerolog.Nop())

	req, err := loader.LoadRequest(context.Background(), "/nonexistent/request.json")

	require.Error(t, err)
	assert.Nil(t, req)
	assert.Contains(t, err.Error(), "failed to open document")
}

func TestFileLoader_Load_InvalidGzip(t *testing.T) {
	loader := NewFileLoader(nil, zerolog.Nop())

	// Write a plain file with a .gz name
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "request.json.gz")
	require.NoError(t, os.WriteFile(filePath, []byte(scenarioFive), 0o644))

	_, err := loader.LoadRequest(context.Background(), filePath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_ContextCancellation(t *testing.T) {
	loader := NewFileLoader(strings.NewReader(scenarioFive), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := loader.LoadRequest(ctx, StdinPath)

	require.Error(t, err)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, context.Canceled)
}
