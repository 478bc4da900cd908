package entities

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// StockLevel holds the on-hand quantity and stock parameters for one
// ingredient. UnitCost, CriticalLevel, ReorderPoint and DailyConsumption are
// optional in the source feed; absent values are zero and callers apply their
// documented defaults.
type StockLevel struct {
	Quantity         decimal.Decimal `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	CriticalLevel    decimal.Decimal `json:"critical_level"`
	ReorderPoint     decimal.Decimal `json:"reorder_point"`
	DailyConsumption decimal.Decimal `json:"daily_consumption"`
}

// InventorySnapshot is the quantity-on-hand state for a set of ingredients.
// It is the only mutable state in the engine: exactly one batch run owns a
// snapshot for its lifetime, and it must never be read concurrently with
// writes. Callers keep an immutable opening state by handing the batch a
// Clone.
type InventorySnapshot struct {
	levels map[IngredientID]*StockLevel
}

// NewInventorySnapshot creates an empty inventory snapshot
func NewInventorySnapshot() *InventorySnapshot {
	return &InventorySnapshot{
		levels: make(map[IngredientID]*StockLevel),
	}
}

// SetLevel sets the full stock level for an ingredient, replacing any
// existing entry.
func (s *InventorySnapshot) SetLevel(id IngredientID, level StockLevel) error {
	if string(id) == "" {
		return fmt.Errorf("ingredient id cannot be empty")
	}
	if level.Quantity.IsNegative() {
		return fmt.Errorf("stock quantity cannot be negative, got %s", level.Quantity)
	}
	s.levels[id] = &level
	return nil
}

// SetQuantity sets only the on-hand quantity, preserving other stock
// parameters when the ingredient already exists.
func (s *InventorySnapshot) SetQuantity(id IngredientID, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return fmt.Errorf("stock quantity cannot be negative, got %s", quantity)
	}
	if level, ok := s.levels[id]; ok {
		level.Quantity = quantity
		return nil
	}
	return s.SetLevel(id, StockLevel{Quantity: quantity})
}

// Quantity returns the on-hand quantity for an ingredient. Unknown
// ingredients have zero stock.
func (s *InventorySnapshot) Quantity(id IngredientID) decimal.Decimal {
	if level, ok := s.levels[id]; ok {
		return level.Quantity
	}
	return decimal.Zero
}

// Level returns the stock level for an ingredient and whether it exists.
func (s *InventorySnapshot) Level(id IngredientID) (StockLevel, bool) {
	if level, ok := s.levels[id]; ok {
		return *level, true
	}
	return StockLevel{}, false
}

// Reduce lowers the on-hand quantity by the given amount, clamped so the
// resulting stock never goes negative. It returns the quantity actually
// removed.
func (s *InventorySnapshot) Reduce(id IngredientID, quantity decimal.Decimal) decimal.Decimal {
	level, ok := s.levels[id]
	if !ok {
		level = &StockLevel{Quantity: decimal.Zero}
		s.levels[id] = level
	}

	removed := quantity
	if removed.GreaterThan(level.Quantity) {
		removed = level.Quantity
	}
	level.Quantity = level.Quantity.Sub(removed)
	return removed
}

// IngredientIDs returns all ingredient ids in the snapshot, sorted for
// deterministic iteration.
func (s *InventorySnapshot) IngredientIDs() []IngredientID {
	ids := make([]IngredientID, 0, len(s.levels))
	for id := range s.levels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of ingredients tracked by the snapshot.
func (s *InventorySnapshot) Len() int {
	return len(s.levels)
}

// Clone returns a deep copy of the snapshot. The copy shares no state with
// the original, so one side can be mutated by a batch run while the other is
// kept as the opening balance.
func (s *InventorySnapshot) Clone() *InventorySnapshot {
	clone := NewInventorySnapshot()
	for id, level := range s.levels {
		copied := *level
		clone.levels[id] = &copied
	}
	return clone
}

// Quantities returns a plain map of on-hand quantities, for serialization and
// reporting.
func (s *InventorySnapshot) Quantities() map[IngredientID]decimal.Decimal {
	out := make(map[IngredientID]decimal.Decimal, len(s.levels))
	for id, level := range s.levels {
		out[id] = level.Quantity
	}
	return out
}
