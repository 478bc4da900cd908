package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// BatchResult contains the complete output of one batch run: one deduction
// result per transaction in processing order, the enriched transactions for
// reporting, the final inventory state and the run summary. FinalQuantities
// is the serializable view of FinalInventory.
type BatchResult struct {
	RunID                string                                    `json:"run_id"`
	Results              []entities.StockDeductionResult           `json:"results"`
	EnrichedTransactions []entities.FractionalSalesTransaction     `json:"enriched_transactions"`
	FinalInventory       *entities.InventorySnapshot               `json:"-"`
	FinalQuantities      map[entities.IngredientID]decimal.Decimal `json:"final_quantities"`
	Summary              entities.BatchSummary                     `json:"summary"`
}
