package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// POSItemCode identifies a sellable item in the point-of-sale system
type POSItemCode string

// RecipeMapping links a POS item code to the recipe and yield variant it
// represents. Mappings are immutable reference data.
type RecipeMapping struct {
	POSItemCode    POSItemCode     `json:"pos_item_code"`
	RecipeCode     RecipeCode      `json:"recipe_code"`
	VariantID      VariantID       `json:"variant_id"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	POSDescription string          `json:"pos_description"`
}

// NewRecipeMapping creates a validated RecipeMapping
func NewRecipeMapping(posItemCode POSItemCode, recipeCode RecipeCode, variantID VariantID, conversionRate decimal.Decimal, posDescription string) (*RecipeMapping, error) {
	if string(posItemCode) == "" {
		return nil, fmt.Errorf("POS item code cannot be empty")
	}
	if string(recipeCode) == "" {
		return nil, fmt.Errorf("recipe code cannot be empty")
	}
	if string(variantID) == "" {
		return nil, fmt.Errorf("variant id cannot be empty")
	}
	if !conversionRate.IsPositive() {
		return nil, fmt.Errorf("conversion rate must be positive, got %s", conversionRate)
	}

	return &RecipeMapping{
		POSItemCode:    posItemCode,
		RecipeCode:     recipeCode,
		VariantID:      variantID,
		ConversionRate: conversionRate,
		POSDescription: posDescription,
	}, nil
}
