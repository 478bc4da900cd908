// Package testing provides shared scenario builders for service-level tests.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/repositories/memory"
)

// MustCreateRecipe is a helper for tests - panics on validation error
func MustCreateRecipe(code, name string, ingredients []entities.Ingredient, variants []entities.YieldVariant) *entities.Recipe {
	recipe, err := entities.NewRecipe(entities.RecipeCode(code), name, ingredients, variants)
	if err != nil {
		panic(err)
	}
	return recipe
}

// MustCreateMapping is a helper for tests - panics on validation error
func MustCreateMapping(posCode, recipeCode, variantID, conversionRate string) *entities.RecipeMapping {
	mapping, err := entities.NewRecipeMapping(
		entities.POSItemCode(posCode),
		entities.RecipeCode(recipeCode),
		entities.VariantID(variantID),
		decimal.RequireFromString(conversionRate),
		"",
	)
	if err != nil {
		panic(err)
	}
	return mapping
}

// MustCreateTransaction is a helper for tests - panics on validation error
func MustCreateTransaction(id, posCode, quantity, price string, timestamp time.Time, location string) entities.POSTransaction {
	tx, err := entities.NewPOSTransaction(
		entities.TransactionID(id),
		entities.POSItemCode(posCode),
		decimal.RequireFromString(quantity),
		decimal.RequireFromString(price),
		timestamp,
		location,
		"test-cashier",
	)
	if err != nil {
		panic(err)
	}
	return *tx
}

// PizzaScenario is the fractional-sales reference scenario used across
// service tests: an eight-slice pizza whose SLICE variant consumes one
// eighth of the base recipe, with 5% cheese wastage.
type PizzaScenario struct {
	Recipes   *memory.RecipeRepository
	Mappings  *memory.MappingRepository
	Inventory *entities.InventorySnapshot
}

// NewPizzaScenario builds the reference scenario with the given opening
// cheese stock in grams.
func NewPizzaScenario(cheeseStock string) *PizzaScenario {
	recipes := memory.NewRecipeRepository()
	mappings := memory.NewMappingRepository()

	recipes.AddRecipe(MustCreateRecipe("PIZZA", "Margherita Pizza",
		[]entities.Ingredient{
			{
				ID:             "CHEESE",
				Name:           "Cheese",
				Type:           entities.IngredientProduct,
				Quantity:       decimal.NewFromInt(200),
				Unit:           "g",
				CostPerUnit:    decimal.RequireFromString("0.01"),
				WastagePercent: decimal.NewFromInt(5),
			},
		},
		[]entities.YieldVariant{
			{
				ID:             "WHOLE",
				Name:           "Whole",
				ConversionRate: decimal.NewFromInt(1),
				WastageRate:    decimal.Zero,
				CostPerUnit:    decimal.RequireFromString("8.00"),
				ShelfLifeHours: 24,
			},
			{
				ID:             "SLICE",
				Name:           "Slice",
				ConversionRate: decimal.RequireFromString("0.125"),
				WastageRate:    decimal.NewFromInt(2),
				CostPerUnit:    decimal.RequireFromString("1.20"),
				ShelfLifeHours: 4,
			},
		}))

	mappings.AddMapping(MustCreateMapping("POS-PIZZA-SLICE", "PIZZA", "SLICE", "0.125"))
	mappings.AddMapping(MustCreateMapping("POS-PIZZA-WHOLE", "PIZZA", "WHOLE", "1"))

	inventory := entities.NewInventorySnapshot()
	if err := inventory.SetLevel("CHEESE", entities.StockLevel{
		Quantity: decimal.RequireFromString(cheeseStock),
		UnitCost: decimal.RequireFromString("0.01"),
	}); err != nil {
		panic(err)
	}

	return &PizzaScenario{
		Recipes:   recipes,
		Mappings:  mappings,
		Inventory: inventory,
	}
}
