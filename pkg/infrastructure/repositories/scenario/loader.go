package scenario

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// Loader reads consumption scenario data from files. Reference data (recipes
// and POS mappings) is JSON; high-volume data (transactions and inventory)
// is CSV.
type Loader struct{}

// NewLoader creates a new scenario loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecipes loads recipes from a JSON file. Every recipe, ingredient and
// variant is re-validated through its constructor so malformed files fail
// with a field-level error instead of surfacing downstream.
func (l *Loader) LoadRecipes(filename string) ([]*entities.Recipe, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipes file %s: %w", filename, err)
	}

	var raw []entities.Recipe
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse recipes JSON: %w", err)
	}

	recipes := make([]*entities.Recipe, 0, len(raw))
	for i, r := range raw {
		recipe, err := validateRecipe(r)
		if err != nil {
			return nil, fmt.Errorf("recipes JSON entry %d: %w", i, err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// LoadMappings loads POS item mappings from a JSON file.
func (l *Loader) LoadMappings(filename string) ([]*entities.RecipeMapping, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mappings file %s: %w", filename, err)
	}

	var raw []entities.RecipeMapping
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mappings JSON: %w", err)
	}

	mappings := make([]*entities.RecipeMapping, 0, len(raw))
	for i, m := range raw {
		mapping, err := entities.NewRecipeMapping(m.POSItemCode, m.RecipeCode, m.VariantID, m.ConversionRate, m.POSDescription)
		if err != nil {
			return nil, fmt.Errorf("mappings JSON entry %d: %w", i, err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

// LoadTransactions loads POS transactions from a CSV file
func (l *Loader) LoadTransactions(filename string) ([]*entities.POSTransaction, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("transactions CSV must have header and at least one data row")
	}

	expectedHeader := []string{"id", "pos_item_code", "quantity_sold", "sale_price", "timestamp", "location", "cashier"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("transactions CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var transactions []*entities.POSTransaction
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("transactions CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		tx, err := parseTransaction(record)
		if err != nil {
			return nil, fmt.Errorf("transactions CSV row %d: %w", i+2, err)
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// LoadInventory loads opening stock levels from a CSV file. Threshold and
// consumption columns may be left empty; they default to zero.
func (l *Loader) LoadInventory(filename string) (*entities.InventorySnapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("inventory CSV must have header and at least one data row")
	}

	expectedHeader := []string{"ingredient_id", "quantity", "unit_cost", "critical_level", "reorder_point", "daily_consumption"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	snapshot := entities.NewInventorySnapshot()
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		id := entities.IngredientID(strings.TrimSpace(record[0]))
		level, err := parseStockLevel(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}

		if err := snapshot.SetLevel(id, level); err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
	}

	return snapshot, nil
}

// Helper functions for parsing scenario records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func validateRecipe(r entities.Recipe) (*entities.Recipe, error) {
	for _, ing := range r.Ingredients {
		if _, err := entities.NewIngredient(ing.ID, ing.Name, ing.Type, ing.Quantity, ing.Unit, ing.CostPerUnit, ing.WastagePercent); err != nil {
			return nil, err
		}
	}
	for _, v := range r.Variants {
		if _, err := entities.NewYieldVariant(v.ID, v.Name, v.ConversionRate, v.WastageRate, v.CostPerUnit, v.ShelfLifeHours); err != nil {
			return nil, err
		}
	}

	recipe, err := entities.NewRecipe(r.Code, r.Name, r.Ingredients, r.Variants)
	if err != nil {
		return nil, err
	}
	recipe.LaborPercent = r.LaborPercent
	recipe.OverheadPercent = r.OverheadPercent
	recipe.CostPerPortion = r.CostPerPortion
	return recipe, nil
}

func parseTransaction(record []string) (*entities.POSTransaction, error) {
	quantitySold, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity_sold: %s", record[2])
	}

	salePrice, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid sale_price: %s", record[3])
	}

	timestamp, err := time.Parse(time.RFC3339, record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %s (expected RFC 3339)", record[4])
	}

	return entities.NewPOSTransaction(
		entities.TransactionID(record[0]),
		entities.POSItemCode(record[1]),
		quantitySold,
		salePrice,
		timestamp,
		record[5],
		record[6],
	)
}

func parseStockLevel(record []string) (entities.StockLevel, error) {
	quantity, err := decimal.NewFromString(record[1])
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid quantity: %s", record[1])
	}
	if quantity.IsNegative() {
		return entities.StockLevel{}, fmt.Errorf("quantity cannot be negative: %s", record[1])
	}

	unitCost, err := decimal.NewFromString(record[2])
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid unit_cost: %s", record[2])
	}

	criticalLevel, err := optionalDecimal(record[3])
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid critical_level: %s", record[3])
	}

	reorderPoint, err := optionalDecimal(record[4])
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid reorder_point: %s", record[4])
	}

	dailyConsumption, err := optionalDecimal(record[5])
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid daily_consumption: %s", record[5])
	}

	return entities.StockLevel{
		Quantity:         quantity,
		UnitCost:         unitCost,
		CriticalLevel:    criticalLevel,
		ReorderPoint:     reorderPoint,
		DailyConsumption: dailyConsumption,
	}, nil
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
