package repositories

import (
	"errors"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// ErrNotFound is returned when reference data does not exist. Callers use
// errors.Is to distinguish absent data, an expected business condition, from
// infrastructure failures.
var ErrNotFound = errors.New("not found")

// RecipeRepository provides read access to the recipe catalog
type RecipeRepository interface {
	GetRecipe(code entities.RecipeCode) (*entities.Recipe, error)
	GetAllRecipes() ([]*entities.Recipe, error)
}
