package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cart-discount/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleRequests writes one request document per reference scenario,
// both plain and gzipped, for trying the evaluate command by hand.
//
//	go run scripts/generate_sample_requests.go
//	go run ./cmd/evaluate --request data/requests/multi_category.json --output text
func main() {
	dataDir := "data/requests"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	fruit := []model.LineItem{item("2.00", "fruit"), item("8.00", "fruit")}
	mixed := append(append([]model.LineItem{}, fruit...), item("20.00", "toy"), item("5.00", "clothing"))

	fruitPercent := model.Coupon{
		Categories:              []string{"fruit"},
		PercentDiscount:         dec("15"),
		MinimumNumItemsRequired: count(2),
		MinimumAmountRequired:   dec("10.00"),
	}

	requests := []struct {
		name     string
		req      model.EvaluationRequest
		expected string
	}{
		{
			name:     "percent",
			req:      model.EvaluationRequest{Cart: fruit, Coupons: []model.Coupon{fruitPercent}},
			expected: "8.50",
		},
		{
			name: "flat",
			req: model.EvaluationRequest{Cart: fruit, Coupons: []model.Coupon{{
				Categories:              []string{"fruit"},
				AmountDiscount:          dec("3.00"),
				MinimumNumItemsRequired: count(2),
				MinimumAmountRequired:   dec("10.00"),
			}}},
			expected: "7.00",
		},
		{
			name: "flat_capped",
			req: model.EvaluationRequest{
				Cart:    []model.LineItem{item("5.00", "fruit")},
				Coupons: []model.Coupon{{Categories: []string{"fruit"}, AmountDiscount: dec("20.00")}},
			},
			expected: "0.00",
		},
		{
			name: "threshold_unmet",
			req: model.EvaluationRequest{Cart: fruit, Coupons: []model.Coupon{{
				Categories:              []string{"fruit"},
				PercentDiscount:         dec("15"),
				MinimumNumItemsRequired: count(3),
				MinimumAmountRequired:   dec("10.00"),
			}}},
			expected: "10.00",
		},
		{
			name: "multi_category",
			req: model.EvaluationRequest{Cart: mixed, Coupons: []model.Coupon{
				{Categories: []string{"clothing", "toy"}, AmountDiscount: dec("6")},
				fruitPercent,
			}},
			expected: "29.00",
		},
		{
			name: "malformed",
			req: model.EvaluationRequest{
				Cart: []model.LineItem{item("10.00", "fruit")},
				Coupons: []model.Coupon{{
					Categories:      []string{"fruit"},
					PercentDiscount: dec("15"),
					AmountDiscount:  dec("10"),
				}},
			},
			expected: "invalid",
		},
		{
			name: "overlap",
			req: model.EvaluationRequest{
				Cart: []model.LineItem{item("10.00", "fruit"), item("5.00", "clothing")},
				Coupons: []model.Coupon{
					{Categories: []string{"fruit", "clothing"}, AmountDiscount: dec("5")},
					{Categories: []string{"fruit"}, PercentDiscount: dec("10")},
				},
			},
			expected: "invalid",
		},
	}

	for _, r := range requests {
		for _, filename := range []string{r.name + ".json", r.name + ".json.gz"} {
			filePath := filepath.Join(dataDir, filename)

			if err := createRequestFile(filePath, r.req); err != nil {
				log.Fatalf("Failed to create %s: %v", filename, err)
			}
		}

		fmt.Printf("Created %-16s expected final price: %s\n", r.name, r.expected)
	}

	fmt.Println("\nSample request files created successfully!")
}

func createRequestFile(filePath string, req model.EvaluationRequest) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	if filepath.Ext(filePath) == ".gz" {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		enc = json.NewEncoder(gzipWriter)
	}
	enc.SetIndent("", "  ")

	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}

	return nil
}

func item(price, category string) model.LineItem {
	return model.LineItem{Price: decimal.RequireFromString(price), Category: category}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func count(n int) *int {
	return &n
}
