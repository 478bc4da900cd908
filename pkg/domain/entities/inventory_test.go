package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInventorySnapshot_ReduceClampsAtZero(t *testing.T) {
	snap := NewInventorySnapshot()
	if err := snap.SetQuantity("CHEESE", decimal.NewFromInt(30)); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	removed := snap.Reduce("CHEESE", decimal.RequireFromString("52.5"))
	if !removed.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected removed 30, got %s", removed)
	}
	if !snap.Quantity("CHEESE").IsZero() {
		t.Errorf("Expected stock clamped at 0, got %s", snap.Quantity("CHEESE"))
	}
}

func TestInventorySnapshot_ReduceUnknownIngredient(t *testing.T) {
	snap := NewInventorySnapshot()

	removed := snap.Reduce("MISSING", decimal.NewFromInt(5))
	if !removed.IsZero() {
		t.Errorf("Expected nothing removed for unknown ingredient, got %s", removed)
	}
	if !snap.Quantity("MISSING").IsZero() {
		t.Errorf("Expected zero stock for unknown ingredient, got %s", snap.Quantity("MISSING"))
	}
}

func TestInventorySnapshot_CloneIsIndependent(t *testing.T) {
	snap := NewInventorySnapshot()
	err := snap.SetLevel("FLOUR", StockLevel{
		Quantity:     decimal.NewFromInt(100),
		UnitCost:     decimal.RequireFromString("0.02"),
		ReorderPoint: decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	clone := snap.Clone()
	clone.Reduce("FLOUR", decimal.NewFromInt(40))

	if !snap.Quantity("FLOUR").Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected original untouched at 100, got %s", snap.Quantity("FLOUR"))
	}
	if !clone.Quantity("FLOUR").Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected clone at 60, got %s", clone.Quantity("FLOUR"))
	}

	level, ok := clone.Level("FLOUR")
	if !ok {
		t.Fatal("Expected clone to carry stock level")
	}
	if !level.ReorderPoint.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected clone to preserve reorder point, got %s", level.ReorderPoint)
	}
}

func TestInventorySnapshot_SetQuantityPreservesParameters(t *testing.T) {
	snap := NewInventorySnapshot()
	err := snap.SetLevel("MILK", StockLevel{
		Quantity:      decimal.NewFromInt(10),
		CriticalLevel: decimal.NewFromInt(2),
	})
	if err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	if err := snap.SetQuantity("MILK", decimal.NewFromInt(8)); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	level, _ := snap.Level("MILK")
	if !level.Quantity.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Expected quantity 8, got %s", level.Quantity)
	}
	if !level.CriticalLevel.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Expected critical level preserved at 2, got %s", level.CriticalLevel)
	}
}

func TestInventorySnapshot_Validation(t *testing.T) {
	snap := NewInventorySnapshot()

	if err := snap.SetLevel("", StockLevel{Quantity: decimal.NewFromInt(1)}); err == nil {
		t.Error("Expected error for empty ingredient id")
	}
	if err := snap.SetQuantity("X", decimal.NewFromInt(-1)); err == nil {
		t.Error("Expected error for negative quantity")
	}
}

func TestInventorySnapshot_IngredientIDsSorted(t *testing.T) {
	snap := NewInventorySnapshot()
	for _, id := range []IngredientID{"TOMATO", "CHEESE", "FLOUR"} {
		if err := snap.SetQuantity(id, decimal.NewFromInt(1)); err != nil {
			t.Fatalf("SetQuantity failed: %v", err)
		}
	}

	ids := snap.IngredientIDs()
	expected := []IngredientID{"CHEESE", "FLOUR", "TOMATO"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %d ids, got %d", len(expected), len(ids))
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Expected id %s at position %d, got %s", expected[i], i, ids[i])
		}
	}
}
