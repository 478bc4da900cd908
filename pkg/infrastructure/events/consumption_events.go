package events

import (
	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

const (
	BatchStartedEvent         = "batch.started"
	TransactionProcessedEvent = "batch.transaction.processed"
	ShortfallDetectedEvent    = "stock.shortfall.detected"
	BatchCompletedEvent       = "batch.completed"

	StockAlertRaisedEvent = "stock.alert.raised"
)

// BatchStarted is recorded when a batch run begins.
type BatchStarted struct {
	RunID            string `json:"run_id"`
	TransactionCount int    `json:"transaction_count"`
	InventoryItems   int    `json:"inventory_items"`
}

// TransactionProcessed is recorded for every transaction in a batch,
// successful or not.
type TransactionProcessed struct {
	RunID  string                        `json:"run_id"`
	Result entities.StockDeductionResult `json:"result"`
}

// ShortfallDetected is recorded once per short ingredient per transaction.
type ShortfallDetected struct {
	RunID         string                 `json:"run_id"`
	TransactionID entities.TransactionID `json:"transaction_id"`
	IngredientID  entities.IngredientID  `json:"ingredient_id"`
	Shortfall     decimal.Decimal        `json:"shortfall"`
}

// BatchCompleted is recorded when a batch run finishes.
type BatchCompleted struct {
	RunID   string                `json:"run_id"`
	Summary entities.BatchSummary `json:"summary"`
}

// StockAlertRaised is recorded when the metrics projector raises an alert.
type StockAlertRaised struct {
	Location string              `json:"location"`
	Alert    entities.StockAlert `json:"alert"`
}
