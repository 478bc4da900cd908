package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus classifies an ingredient's stock level against its thresholds.
// Severity is ordered: OutOfStock > Critical > Low > Adequate.
type StockStatus int

const (
	StockAdequate StockStatus = iota
	StockLow
	StockCritical
	StockOutOfStock
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockAdequate:
		return "Adequate"
	case StockLow:
		return "Low"
	case StockCritical:
		return "Critical"
	case StockOutOfStock:
		return "OutOfStock"
	default:
		return "Unknown"
	}
}

// AlertSeverity is the severity of a stock alert, derived from stock status.
type AlertSeverity int

const (
	SeverityInfo AlertSeverity = iota
	SeverityWarning
	SeverityCritical
)

// String method for AlertSeverity enum
func (s AlertSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// IngredientStockMetric is the projected stock position of one ingredient.
// EstimatedDepletion is nil when no consumption rate is available.
type IngredientStockMetric struct {
	IngredientID       IngredientID    `json:"ingredient_id"`
	QuantityOnHand     decimal.Decimal `json:"quantity_on_hand"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	StockValue         decimal.Decimal `json:"stock_value"`
	Status             StockStatus     `json:"status"`
	DaysOfCover        float64         `json:"days_of_cover"`
	EstimatedDepletion *time.Time      `json:"estimated_depletion,omitempty"`
}

// StockAlert is raised for every ingredient whose status is not adequate.
type StockAlert struct {
	ID           string        `json:"id"`
	IngredientID IngredientID  `json:"ingredient_id"`
	Status       StockStatus   `json:"status"`
	Severity     AlertSeverity `json:"severity"`
	Message      string        `json:"message"`
	RaisedAt     time.Time     `json:"raised_at"`
}

// RealTimeConsumptionMetrics is the dashboard projection of a live inventory
// snapshot for one location.
type RealTimeConsumptionMetrics struct {
	Location        string                  `json:"location"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Items           []IngredientStockMetric `json:"items"`
	Alerts          []StockAlert            `json:"alerts"`
	TotalStockValue decimal.Decimal         `json:"total_stock_value"`
	OutOfStockCount int                     `json:"out_of_stock_count"`
	CriticalCount   int                     `json:"critical_count"`
	LowCount        int                     `json:"low_count"`
}
