package memory

import (
	"fmt"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/repositories"
)

// RecipeRepository provides in-memory recipe catalog storage
type RecipeRepository struct {
	recipes    []entities.Recipe
	recipesMap map[entities.RecipeCode]int
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipesMap: make(map[entities.RecipeCode]int),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		r.AddRecipe(recipe)
	}
	return nil
}

// AddRecipe adds a recipe to the repository, replacing any recipe with the
// same code.
func (r *RecipeRepository) AddRecipe(recipe *entities.Recipe) {
	if index, exists := r.recipesMap[recipe.Code]; exists {
		r.recipes[index] = *recipe
		return
	}
	r.recipesMap[recipe.Code] = len(r.recipes)
	r.recipes = append(r.recipes, *recipe)
}

// GetRecipe returns the recipe for a recipe code
func (r *RecipeRepository) GetRecipe(code entities.RecipeCode) (*entities.Recipe, error) {
	index, exists := r.recipesMap[code]
	if !exists {
		return nil, fmt.Errorf("recipe %s: %w", code, repositories.ErrNotFound)
	}
	return &r.recipes[index], nil
}

// GetAllRecipes returns all recipes
func (r *RecipeRepository) GetAllRecipes() ([]*entities.Recipe, error) {
	recipes := make([]*entities.Recipe, 0, len(r.recipes))
	for i := range r.recipes {
		recipes = append(recipes, &r.recipes[i])
	}
	return recipes, nil
}
