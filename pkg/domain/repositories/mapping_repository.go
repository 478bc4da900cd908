package repositories

import (
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// MappingRepository provides read access to the POS-to-recipe mapping table
type MappingRepository interface {
	GetMapping(code entities.POSItemCode) (*entities.RecipeMapping, error)
	GetAllMappings() ([]*entities.RecipeMapping, error)
}
