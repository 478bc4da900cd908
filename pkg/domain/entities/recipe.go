package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecipeCode is a unique recipe identifier supplied by the recipe catalog
type RecipeCode string

// IngredientID is a unique ingredient identifier
type IngredientID string

// VariantID is a unique yield-variant identifier within a recipe
type VariantID string

// IngredientType distinguishes raw products from sub-recipes used as ingredients
type IngredientType int

const (
	IngredientProduct IngredientType = iota
	IngredientRecipe
)

// String method for IngredientType enum
func (t IngredientType) String() string {
	switch t {
	case IngredientProduct:
		return "Product"
	case IngredientRecipe:
		return "Recipe"
	default:
		return "Unknown"
	}
}

// Ingredient represents one line of a recipe's ingredient list. Quantity is the
// amount consumed by producing one base recipe; WastagePercent is added on top
// of the theoretical requirement during preparation.
type Ingredient struct {
	ID             IngredientID    `json:"id"`
	Name           string          `json:"name"`
	Type           IngredientType  `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	WastagePercent decimal.Decimal `json:"wastage_percent"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(id IngredientID, name string, ingredientType IngredientType, quantity decimal.Decimal, unit string, costPerUnit, wastagePercent decimal.Decimal) (*Ingredient, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("ingredient quantity cannot be negative, got %s", quantity)
	}
	if costPerUnit.IsNegative() {
		return nil, fmt.Errorf("ingredient cost per unit cannot be negative, got %s", costPerUnit)
	}
	if wastagePercent.IsNegative() {
		return nil, fmt.Errorf("ingredient wastage percent cannot be negative, got %s", wastagePercent)
	}

	return &Ingredient{
		ID:             id,
		Name:           name,
		Type:           ingredientType,
		Quantity:       quantity,
		Unit:           unit,
		CostPerUnit:    costPerUnit,
		WastagePercent: wastagePercent,
	}, nil
}

// YieldVariant represents one sellable portion size of a recipe. ConversionRate
// is the fraction of one base recipe consumed by selling one unit of the
// variant (0.125 for one slice of an eight-slice pizza). WastageRate applies at
// the variant level on top of ingredient wastage.
type YieldVariant struct {
	ID             VariantID       `json:"id"`
	Name           string          `json:"name"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	WastageRate    decimal.Decimal `json:"wastage_rate"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	ShelfLifeHours int             `json:"shelf_life_hours"`
}

// NewYieldVariant creates a validated YieldVariant
func NewYieldVariant(id VariantID, name string, conversionRate, wastageRate, costPerUnit decimal.Decimal, shelfLifeHours int) (*YieldVariant, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("variant id cannot be empty")
	}
	if !conversionRate.IsPositive() {
		return nil, fmt.Errorf("conversion rate must be positive, got %s", conversionRate)
	}
	if wastageRate.IsNegative() {
		return nil, fmt.Errorf("variant wastage rate cannot be negative, got %s", wastageRate)
	}
	if costPerUnit.IsNegative() {
		return nil, fmt.Errorf("variant cost per unit cannot be negative, got %s", costPerUnit)
	}

	return &YieldVariant{
		ID:             id,
		Name:           name,
		ConversionRate: conversionRate,
		WastageRate:    wastageRate,
		CostPerUnit:    costPerUnit,
		ShelfLifeHours: shelfLifeHours,
	}, nil
}

// Recipe represents a recipe with its ingredient list and yield variants.
// Recipes are reference data owned by the external catalog and are treated as
// immutable for the duration of a calculation.
type Recipe struct {
	Code            RecipeCode      `json:"code"`
	Name            string          `json:"name"`
	Ingredients     []Ingredient    `json:"ingredients"`
	Variants        []YieldVariant  `json:"variants"`
	LaborPercent    decimal.Decimal `json:"labor_percent"`
	OverheadPercent decimal.Decimal `json:"overhead_percent"`
	CostPerPortion  decimal.Decimal `json:"cost_per_portion"`
}

// NewRecipe creates a validated Recipe
func NewRecipe(code RecipeCode, name string, ingredients []Ingredient, variants []YieldVariant) (*Recipe, error) {
	if string(code) == "" {
		return nil, fmt.Errorf("recipe code cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}

	seen := make(map[VariantID]bool, len(variants))
	for _, v := range variants {
		if seen[v.ID] {
			return nil, fmt.Errorf("duplicate variant id %s on recipe %s", v.ID, code)
		}
		seen[v.ID] = true
	}

	return &Recipe{
		Code:        code,
		Name:        name,
		Ingredients: ingredients,
		Variants:    variants,
	}, nil
}

// Variant returns the yield variant with the given id, or false when the
// recipe has no such variant.
func (r *Recipe) Variant(id VariantID) (*YieldVariant, bool) {
	for i := range r.Variants {
		if r.Variants[i].ID == id {
			return &r.Variants[i], true
		}
	}
	return nil, false
}

// BaseCost returns the ingredient cost of producing one base recipe, before
// labor and overhead.
func (r *Recipe) BaseCost() decimal.Decimal {
	total := decimal.Zero
	for _, ing := range r.Ingredients {
		total = total.Add(ing.Quantity.Mul(ing.CostPerUnit))
	}
	return total
}
