package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionID identifies a single POS transaction
type TransactionID string

// FractionalSalesType classifies a sale by the portion of a base recipe it
// consumes. Classification is derived from the conversion rate.
type FractionalSalesType int

const (
	SaleWhole FractionalSalesType = iota
	SaleHalf
	SaleQuarter
	SaleSlice
	SaleCustom
)

// String method for FractionalSalesType enum
func (t FractionalSalesType) String() string {
	switch t {
	case SaleWhole:
		return "Whole"
	case SaleHalf:
		return "Half"
	case SaleQuarter:
		return "Quarter"
	case SaleSlice:
		return "Slice"
	case SaleCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// POSTransaction represents one raw sale event from the point-of-sale feed.
// SalePrice is the unit price; revenue for the line is SalePrice x QuantitySold.
type POSTransaction struct {
	ID           TransactionID   `json:"id"`
	POSItemCode  POSItemCode     `json:"pos_item_code"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Timestamp    time.Time       `json:"timestamp"`
	Location     string          `json:"location"`
	Cashier      string          `json:"cashier"`
}

// NewPOSTransaction creates a validated POSTransaction
func NewPOSTransaction(id TransactionID, posItemCode POSItemCode, quantitySold, salePrice decimal.Decimal, timestamp time.Time, location, cashier string) (*POSTransaction, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("transaction id cannot be empty")
	}
	if string(posItemCode) == "" {
		return nil, fmt.Errorf("POS item code cannot be empty")
	}
	if !quantitySold.IsPositive() {
		return nil, fmt.Errorf("quantity sold must be positive, got %s", quantitySold)
	}
	if salePrice.IsNegative() {
		return nil, fmt.Errorf("sale price cannot be negative, got %s", salePrice)
	}

	return &POSTransaction{
		ID:           id,
		POSItemCode:  posItemCode,
		QuantitySold: quantitySold,
		SalePrice:    salePrice,
		Timestamp:    timestamp,
		Location:     location,
		Cashier:      cashier,
	}, nil
}

// Revenue returns the total revenue of the transaction line.
func (t *POSTransaction) Revenue() decimal.Decimal {
	return t.SalePrice.Mul(t.QuantitySold)
}

// FractionalSalesTransaction is a POSTransaction enriched with recipe linkage
// and cost data. Enrichment fields are populated once during batch processing
// and never mutated afterward.
type FractionalSalesTransaction struct {
	POSTransaction

	BaseRecipeCode RecipeCode          `json:"base_recipe_code"`
	VariantID      VariantID           `json:"variant_id"`
	ConversionRate decimal.Decimal     `json:"conversion_rate"`
	CostPrice      decimal.Decimal     `json:"cost_price"`
	GrossProfit    decimal.Decimal     `json:"gross_profit"`
	SalesType      FractionalSalesType `json:"sales_type"`
}

// IsFractional reports whether the sale consumed less than one base recipe
// per unit sold.
func (t *FractionalSalesTransaction) IsFractional() bool {
	return t.ConversionRate.LessThan(decimal.NewFromInt(1))
}
