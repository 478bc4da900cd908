package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientDeduction is the per-ingredient outcome of deducting one
// transaction's requirement from stock. TheoreticalQuantity is the pure
// recipe requirement, ActualQuantity the wastage-adjusted demand, and
// DeductedQuantity is capped at the stock available before the deduction.
// Shortfall is the unmet portion of ActualQuantity, zero when stock covered
// the demand.
type IngredientDeduction struct {
	IngredientID        IngredientID    `json:"ingredient_id"`
	IngredientName      string          `json:"ingredient_name"`
	Unit                string          `json:"unit"`
	TheoreticalQuantity decimal.Decimal `json:"theoretical_quantity"`
	ActualQuantity      decimal.Decimal `json:"actual_quantity"`
	StockBefore         decimal.Decimal `json:"stock_before"`
	DeductedQuantity    decimal.Decimal `json:"deducted_quantity"`
	StockAfter          decimal.Decimal `json:"stock_after"`
	Shortfall           decimal.Decimal `json:"shortfall"`
	WastageQuantity     decimal.Decimal `json:"wastage_quantity"`
	Cost                decimal.Decimal `json:"cost"`
}

// StockDeductionResult aggregates the ingredient deductions of one
// transaction against one recipe variant. Success is false when any
// ingredient had a shortfall or when reference data was missing; shortfalls
// and missing data are reported in Errors as plain text, never as Go errors,
// because stock depletion is an expected business condition.
type StockDeductionResult struct {
	TransactionID       TransactionID         `json:"transaction_id"`
	POSItemCode         POSItemCode           `json:"pos_item_code"`
	RecipeCode          RecipeCode            `json:"recipe_code"`
	VariantID           VariantID             `json:"variant_id"`
	BaseRecipeQuantity  decimal.Decimal       `json:"base_recipe_quantity"`
	QuantityWithWastage decimal.Decimal       `json:"quantity_with_wastage"`
	Deductions          []IngredientDeduction `json:"deductions"`
	TotalCost           decimal.Decimal       `json:"total_cost"`
	TotalWastage        decimal.Decimal       `json:"total_wastage"`
	Success             bool                  `json:"success"`
	Errors              []string              `json:"errors,omitempty"`
}

// BatchSummary summarizes one batch run over an ordered transaction stream.
type BatchSummary struct {
	TransactionCount    int             `json:"transaction_count"`
	SucceededCount      int             `json:"succeeded_count"`
	FailedCount         int             `json:"failed_count"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	TotalWastage        decimal.Decimal `json:"total_wastage"`
	IngredientsAffected int             `json:"ingredients_affected"`
	StartedAt           time.Time       `json:"started_at"`
	CompletedAt         time.Time       `json:"completed_at"`
}
