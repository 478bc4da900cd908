package memory

import (
	"fmt"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/repositories"
)

// MappingRepository provides in-memory POS-to-recipe mapping storage
type MappingRepository struct {
	mappings    []entities.RecipeMapping
	mappingsMap map[entities.POSItemCode]int
}

// NewMappingRepository creates a new in-memory mapping repository
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{
		mappingsMap: make(map[entities.POSItemCode]int),
	}
}

// Verify interface compliance
var _ repositories.MappingRepository = (*MappingRepository)(nil)

// LoadMappings loads mappings into the repository
func (r *MappingRepository) LoadMappings(mappings []*entities.RecipeMapping) error {
	for _, mapping := range mappings {
		r.AddMapping(mapping)
	}
	return nil
}

// AddMapping adds a mapping to the repository, replacing any mapping with
// the same POS item code.
func (r *MappingRepository) AddMapping(mapping *entities.RecipeMapping) {
	if index, exists := r.mappingsMap[mapping.POSItemCode]; exists {
		r.mappings[index] = *mapping
		return
	}
	r.mappingsMap[mapping.POSItemCode] = len(r.mappings)
	r.mappings = append(r.mappings, *mapping)
}

// GetMapping returns the mapping for a POS item code
func (r *MappingRepository) GetMapping(code entities.POSItemCode) (*entities.RecipeMapping, error) {
	index, exists := r.mappingsMap[code]
	if !exists {
		return nil, fmt.Errorf("mapping %s: %w", code, repositories.ErrNotFound)
	}
	return &r.mappings[index], nil
}

// GetAllMappings returns all mappings
func (r *MappingRepository) GetAllMappings() ([]*entities.RecipeMapping, error) {
	mappings := make([]*entities.RecipeMapping, 0, len(r.mappings))
	for i := range r.mappings {
		mappings = append(mappings, &r.mappings[i])
	}
	return mappings, nil
}
