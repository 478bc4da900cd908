package batch

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rkaliyev/fractional-inventory/pkg/application/dto"
	"github.com/rkaliyev/fractional-inventory/pkg/application/services/deduction"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/repositories"
	domainservices "github.com/rkaliyev/fractional-inventory/pkg/domain/services"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/events"
)

// Options holds optional collaborators for a Processor. A nil Logger means
// no logging; a nil EventStore means no event recording.
type Options struct {
	Logger     *zap.Logger
	EventStore events.EventStore
}

// Processor replays an ordered stream of POS transactions against a shared
// inventory snapshot. One processor run owns the snapshot for its lifetime;
// the snapshot must not be read or written by anything else until
// ProcessBatch returns.
type Processor struct {
	engine   *deduction.Engine
	recipes  repositories.RecipeRepository
	mappings repositories.MappingRepository
	logger   *zap.Logger
	store    events.EventStore
}

// NewProcessor creates a batch processor over the given reference data.
func NewProcessor(engine *deduction.Engine, recipes repositories.RecipeRepository, mappings repositories.MappingRepository, opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		engine:   engine,
		recipes:  recipes,
		mappings: mappings,
		logger:   logger,
		store:    opts.EventStore,
	}
}

// ProcessBatch processes transactions in timestamp order against the given
// inventory snapshot, mutating it in place. Each transaction observes the
// depleted state left by its predecessors; submission order does not matter,
// only timestamps do. A transaction with missing reference data produces a
// failed result and leaves inventory untouched; it never aborts the batch.
// The returned error is reserved for infrastructure failures in the
// reference-data repositories.
func (p *Processor) ProcessBatch(transactions []entities.POSTransaction, inventory *entities.InventorySnapshot) (*dto.BatchResult, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	ordered := make([]entities.POSTransaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	p.logger.Info("batch started",
		zap.String("run_id", runID),
		zap.Int("transactions", len(ordered)),
		zap.Int("inventory_items", inventory.Len()))
	p.record(runID, events.BatchStartedEvent, events.BatchStarted{
		RunID:            runID,
		TransactionCount: len(ordered),
		InventoryItems:   inventory.Len(),
	})

	result := &dto.BatchResult{
		RunID:                runID,
		Results:              make([]entities.StockDeductionResult, 0, len(ordered)),
		EnrichedTransactions: make([]entities.FractionalSalesTransaction, 0, len(ordered)),
		FinalInventory:       inventory,
	}

	summary := entities.BatchSummary{
		TotalCost:    decimal.Zero,
		TotalWastage: decimal.Zero,
		StartedAt:    startedAt,
	}
	touched := make(map[entities.IngredientID]bool)

	for _, tx := range ordered {
		deductionResult, enriched, err := p.processOne(tx, inventory)
		if err != nil {
			return nil, fmt.Errorf("batch %s: transaction %s: %w", runID, tx.ID, err)
		}

		if enriched != nil {
			result.EnrichedTransactions = append(result.EnrichedTransactions, *enriched)
		}
		result.Results = append(result.Results, deductionResult)

		summary.TransactionCount++
		if deductionResult.Success {
			summary.SucceededCount++
		} else {
			summary.FailedCount++
		}
		summary.TotalCost = summary.TotalCost.Add(deductionResult.TotalCost)
		summary.TotalWastage = summary.TotalWastage.Add(deductionResult.TotalWastage)
		for _, d := range deductionResult.Deductions {
			touched[d.IngredientID] = true
		}

		p.record(runID, events.TransactionProcessedEvent, events.TransactionProcessed{
			RunID:  runID,
			Result: deductionResult,
		})
		for _, d := range deductionResult.Deductions {
			if d.Shortfall.IsPositive() {
				p.logger.Warn("stock shortfall",
					zap.String("run_id", runID),
					zap.String("transaction_id", string(tx.ID)),
					zap.String("ingredient_id", string(d.IngredientID)),
					zap.String("shortfall", d.Shortfall.String()))
				p.record(runID, events.ShortfallDetectedEvent, events.ShortfallDetected{
					RunID:         runID,
					TransactionID: tx.ID,
					IngredientID:  d.IngredientID,
					Shortfall:     d.Shortfall,
				})
			}
		}
	}

	summary.IngredientsAffected = len(touched)
	summary.CompletedAt = time.Now()
	result.Summary = summary
	result.FinalQuantities = inventory.Quantities()

	p.logger.Info("batch completed",
		zap.String("run_id", runID),
		zap.Int("succeeded", summary.SucceededCount),
		zap.Int("failed", summary.FailedCount),
		zap.String("total_cost", summary.TotalCost.String()))
	p.record(runID, events.BatchCompletedEvent, events.BatchCompleted{
		RunID:   runID,
		Summary: summary,
	})

	return result, nil
}

// processOne resolves reference data for a single transaction and delegates
// to the deduction engine. Missing mappings and recipes become failed
// results with no inventory effect.
func (p *Processor) processOne(tx entities.POSTransaction, inventory *entities.InventorySnapshot) (entities.StockDeductionResult, *entities.FractionalSalesTransaction, error) {
	mapping, err := p.mappings.GetMapping(tx.POSItemCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return p.failedResult(tx, "", fmt.Sprintf("no mapping found for POS item %s", tx.POSItemCode)), nil, nil
		}
		return entities.StockDeductionResult{}, nil, err
	}

	recipe, err := p.recipes.GetRecipe(mapping.RecipeCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return p.failedResult(tx, mapping.RecipeCode, fmt.Sprintf("no recipe found for code %s", mapping.RecipeCode)), nil, nil
		}
		return entities.StockDeductionResult{}, nil, err
	}

	deductionResult := p.engine.Deduct(tx, mapping, recipe, inventory)

	var enriched *entities.FractionalSalesTransaction
	if variant, ok := recipe.Variant(mapping.VariantID); ok {
		e := domainservices.EnrichTransaction(tx, mapping, variant)
		enriched = &e
	}

	return deductionResult, enriched, nil
}

func (p *Processor) failedResult(tx entities.POSTransaction, recipeCode entities.RecipeCode, message string) entities.StockDeductionResult {
	return entities.StockDeductionResult{
		TransactionID: tx.ID,
		POSItemCode:   tx.POSItemCode,
		RecipeCode:    recipeCode,
		TotalCost:     decimal.Zero,
		TotalWastage:  decimal.Zero,
		Success:       false,
		Errors:        []string{message},
	}
}

// record appends an event when a store is configured. Event recording is
// advisory: an append failure is logged and does not fail the batch.
func (p *Processor) record(runID, eventType string, data interface{}) {
	if p.store == nil {
		return
	}
	if err := p.store.AppendEvent(runID, events.NewEvent(eventType, runID, data)); err != nil {
		p.logger.Warn("event append failed",
			zap.String("run_id", runID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
