package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

func TestClassifySalesType(t *testing.T) {
	testCases := []struct {
		rate     string
		expected entities.FractionalSalesType
	}{
		{"1", entities.SaleWhole},
		{"1.5", entities.SaleWhole},
		{"0.5", entities.SaleHalf},
		{"0.25", entities.SaleQuarter},
		{"0.125", entities.SaleSlice},
		{"0.2", entities.SaleCustom},
		{"0.1", entities.SaleCustom},
	}

	for _, tc := range testCases {
		t.Run(tc.rate, func(t *testing.T) {
			got := ClassifySalesType(decimal.RequireFromString(tc.rate))
			if got != tc.expected {
				t.Errorf("Expected %s for rate %s, got %s", tc.expected, tc.rate, got)
			}
		})
	}
}

func TestEnrichTransaction(t *testing.T) {
	tx := entities.POSTransaction{
		ID:           "TX1",
		POSItemCode:  "PIZZA-SLICE",
		QuantitySold: decimal.NewFromInt(2),
		SalePrice:    decimal.RequireFromString("3.50"),
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Location:     "DOWNTOWN",
	}
	mapping := &entities.RecipeMapping{
		POSItemCode:    "PIZZA-SLICE",
		RecipeCode:     "PIZZA",
		VariantID:      "SLICE",
		ConversionRate: decimal.RequireFromString("0.125"),
	}
	variant := &entities.YieldVariant{
		ID:             "SLICE",
		ConversionRate: decimal.RequireFromString("0.125"),
		CostPerUnit:    decimal.RequireFromString("1.20"),
	}

	enriched := EnrichTransaction(tx, mapping, variant)

	if enriched.BaseRecipeCode != "PIZZA" {
		t.Errorf("Expected base recipe PIZZA, got %s", enriched.BaseRecipeCode)
	}
	if enriched.SalesType != entities.SaleSlice {
		t.Errorf("Expected slice sales type, got %s", enriched.SalesType)
	}
	// cost = 1.20 * 2 = 2.40; profit = 7.00 - 2.40 = 4.60
	if !enriched.CostPrice.Equal(decimal.RequireFromString("2.40")) {
		t.Errorf("Expected cost price 2.40, got %s", enriched.CostPrice)
	}
	if !enriched.GrossProfit.Equal(decimal.RequireFromString("4.60")) {
		t.Errorf("Expected gross profit 4.60, got %s", enriched.GrossProfit)
	}
	if !enriched.IsFractional() {
		t.Error("Expected slice sale to be fractional")
	}
}
