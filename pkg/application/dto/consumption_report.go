package dto

import (
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// ConsumptionReport is the analytics bundle for one period and location.
// All contained records are immutable once returned.
type ConsumptionReport struct {
	PeriodID             string                                 `json:"period_id"`
	Location             string                                 `json:"location"`
	IngredientRecords    []entities.IngredientConsumptionRecord `json:"ingredient_records"`
	RecipeSummaries      []entities.RecipeConsumptionSummary    `json:"recipe_summaries"`
	LocationAnalytics    entities.LocationConsumptionAnalytics  `json:"location_analytics"`
	VarianceAnalysis     entities.ConsumptionVarianceAnalysis   `json:"variance_analysis"`
	EfficiencyReport     entities.FractionalEfficiencyReport    `json:"efficiency_report"`
	UnmappedTransactions int                                    `json:"unmapped_transactions"`
}
