package deduction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Engine computes ingredient-level stock deductions for single transactions.
// The engine is stateless; callers construct and own instances rather than
// sharing a process-wide singleton.
type Engine struct{}

// NewEngine creates a new stock deduction engine
func NewEngine() *Engine {
	return &Engine{}
}

// Deduct converts one transaction into ingredient-level deductions against
// the given inventory snapshot. The snapshot is mutated in place: each
// ingredient's stock is updated immediately so later ingredients and later
// transactions observe the depleted level. Deductions are applied even when
// stock is short; the engine deducts what is available and reports the
// shortfall instead of rolling back. Stock depletion and missing variants
// are business conditions returned in the result, never Go errors.
func (e *Engine) Deduct(tx entities.POSTransaction, mapping *entities.RecipeMapping, recipe *entities.Recipe, inventory *entities.InventorySnapshot) entities.StockDeductionResult {
	result := entities.StockDeductionResult{
		TransactionID: tx.ID,
		POSItemCode:   tx.POSItemCode,
		RecipeCode:    recipe.Code,
		VariantID:     mapping.VariantID,
		TotalCost:     decimal.Zero,
		TotalWastage:  decimal.Zero,
	}

	variant, ok := recipe.Variant(mapping.VariantID)
	if !ok {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("variant %s not found on recipe %s", mapping.VariantID, recipe.Code))
		return result
	}

	baseQty := tx.QuantitySold.Mul(mapping.ConversionRate)
	result.BaseRecipeQuantity = baseQty
	result.QuantityWithWastage = baseQty.Mul(one.Add(variant.WastageRate.Div(hundred)))

	result.Success = true
	result.Deductions = make([]entities.IngredientDeduction, 0, len(recipe.Ingredients))

	// Ingredients are independent of each other, so recipe order is kept for
	// readability of the result, not for correctness.
	for _, ing := range recipe.Ingredients {
		theoretical := ing.Quantity.Mul(baseQty)
		actualNeeded := theoretical.Mul(one.Add(ing.WastagePercent.Div(hundred)))

		stockBefore := inventory.Quantity(ing.ID)
		deducted := inventory.Reduce(ing.ID, actualNeeded)
		stockAfter := inventory.Quantity(ing.ID)

		shortfall := actualNeeded.Sub(stockBefore)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}

		wastageQty := deducted.Sub(theoretical)
		if wastageQty.IsNegative() {
			wastageQty = decimal.Zero
		}

		cost := deducted.Mul(ing.CostPerUnit)

		result.Deductions = append(result.Deductions, entities.IngredientDeduction{
			IngredientID:        ing.ID,
			IngredientName:      ing.Name,
			Unit:                ing.Unit,
			TheoreticalQuantity: theoretical,
			ActualQuantity:      actualNeeded,
			StockBefore:         stockBefore,
			DeductedQuantity:    deducted,
			StockAfter:          stockAfter,
			Shortfall:           shortfall,
			WastageQuantity:     wastageQty,
			Cost:                cost,
		})

		result.TotalCost = result.TotalCost.Add(cost)
		result.TotalWastage = result.TotalWastage.Add(wastageQty)

		if shortfall.IsPositive() {
			result.Success = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("insufficient stock for %s (%s): needed %s %s, had %s %s, short %s %s",
					ing.Name, ing.ID,
					actualNeeded, ing.Unit,
					stockBefore, ing.Unit,
					shortfall, ing.Unit))
		}
	}

	return result
}
