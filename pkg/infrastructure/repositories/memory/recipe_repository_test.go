package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/repositories"
)

func TestRecipeRepository_GetRecipe(t *testing.T) {
	repo := NewRecipeRepository()
	repo.AddRecipe(&entities.Recipe{Code: "PIZZA", Name: "Margherita"})

	recipe, err := repo.GetRecipe("PIZZA")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if recipe.Name != "Margherita" {
		t.Errorf("Expected name Margherita, got %s", recipe.Name)
	}
}

func TestRecipeRepository_NotFound(t *testing.T) {
	repo := NewRecipeRepository()

	_, err := repo.GetRecipe("MISSING")
	if err == nil {
		t.Fatal("Expected error for missing recipe")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRecipeRepository_AddReplacesExisting(t *testing.T) {
	repo := NewRecipeRepository()
	repo.AddRecipe(&entities.Recipe{Code: "PIZZA", Name: "Old"})
	repo.AddRecipe(&entities.Recipe{Code: "PIZZA", Name: "New"})

	recipe, err := repo.GetRecipe("PIZZA")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if recipe.Name != "New" {
		t.Errorf("Expected replacement to win, got %s", recipe.Name)
	}

	all, err := repo.GetAllRecipes()
	if err != nil {
		t.Fatalf("GetAllRecipes failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 recipe after replacement, got %d", len(all))
	}
}

func TestMappingRepository_Lookup(t *testing.T) {
	repo := NewMappingRepository()
	repo.AddMapping(&entities.RecipeMapping{
		POSItemCode:    "POS-1",
		RecipeCode:     "PIZZA",
		VariantID:      "SLICE",
		ConversionRate: decimal.RequireFromString("0.125"),
	})

	mapping, err := repo.GetMapping("POS-1")
	if err != nil {
		t.Fatalf("GetMapping failed: %v", err)
	}
	if mapping.RecipeCode != "PIZZA" || mapping.VariantID != "SLICE" {
		t.Errorf("Unexpected mapping: %+v", mapping)
	}

	_, err = repo.GetMapping("POS-404")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown code, got %v", err)
	}
}
