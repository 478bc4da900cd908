package entities

import (
	"github.com/shopspring/decimal"
)

// IngredientConsumptionRecord is a period-scoped read model of one
// ingredient's consumption. Invariants: ActualCost = TheoreticalCost +
// CostVariance, and CostVariance = QuantityVariance x CostPerUnit.
// FractionalQuantity and WholeUnitQuantity split ActualQuantity by whether
// the consuming sale had a conversion rate below one.
type IngredientConsumptionRecord struct {
	PeriodID            string          `json:"period_id"`
	Location            string          `json:"location"`
	IngredientID        IngredientID    `json:"ingredient_id"`
	IngredientName      string          `json:"ingredient_name"`
	Unit                string          `json:"unit"`
	TheoreticalQuantity decimal.Decimal `json:"theoretical_quantity"`
	ActualQuantity      decimal.Decimal `json:"actual_quantity"`
	QuantityVariance    decimal.Decimal `json:"quantity_variance"`
	VariancePercent     float64         `json:"variance_percent"`
	FractionalQuantity  decimal.Decimal `json:"fractional_quantity"`
	WholeUnitQuantity   decimal.Decimal `json:"whole_unit_quantity"`
	CostPerUnit         decimal.Decimal `json:"cost_per_unit"`
	TheoreticalCost     decimal.Decimal `json:"theoretical_cost"`
	ActualCost          decimal.Decimal `json:"actual_cost"`
	CostVariance        decimal.Decimal `json:"cost_variance"`
	TransactionCount    int             `json:"transaction_count"`
}

// VariantSalesSummary aggregates sales of one yield variant within a recipe
// summary.
type VariantSalesSummary struct {
	VariantID            VariantID       `json:"variant_id"`
	VariantName          string          `json:"variant_name"`
	ConversionRate       decimal.Decimal `json:"conversion_rate"`
	QuantitySold         decimal.Decimal `json:"quantity_sold"`
	Revenue              decimal.Decimal `json:"revenue"`
	Cost                 decimal.Decimal `json:"cost"`
	BaseRecipeEquivalent decimal.Decimal `json:"base_recipe_equivalent"`
	TransactionCount     int             `json:"transaction_count"`
}

// RecipeConsumptionSummary aggregates one recipe's sales for a period and
// location, broken down by yield variant.
type RecipeConsumptionSummary struct {
	PeriodID            string                `json:"period_id"`
	Location            string                `json:"location"`
	RecipeCode          RecipeCode            `json:"recipe_code"`
	RecipeName          string                `json:"recipe_name"`
	QuantitySold        decimal.Decimal       `json:"quantity_sold"`
	Revenue             decimal.Decimal       `json:"revenue"`
	Cost                decimal.Decimal       `json:"cost"`
	GrossProfit         decimal.Decimal       `json:"gross_profit"`
	ProfitMargin        float64               `json:"profit_margin"`
	BaseRecipesProduced decimal.Decimal       `json:"base_recipes_produced"`
	Variants            []VariantSalesSummary `json:"variants"`
}

// TopFractionalVariant is one entry of the revenue ranking of fractional
// variants for a location.
type TopFractionalVariant struct {
	RecipeCode  RecipeCode      `json:"recipe_code"`
	RecipeName  string          `json:"recipe_name"`
	VariantID   VariantID       `json:"variant_id"`
	VariantName string          `json:"variant_name"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// LocationConsumptionAnalytics rolls up all recipes for one location and
// period.
type LocationConsumptionAnalytics struct {
	PeriodID              string                 `json:"period_id"`
	Location              string                 `json:"location"`
	TotalRevenue          decimal.Decimal        `json:"total_revenue"`
	TotalCost             decimal.Decimal        `json:"total_cost"`
	GrossProfit           decimal.Decimal        `json:"gross_profit"`
	ProfitMargin          float64                `json:"profit_margin"`
	RecipeCount           int                    `json:"recipe_count"`
	TransactionCount      int                    `json:"transaction_count"`
	TopFractionalVariants []TopFractionalVariant `json:"top_fractional_variants"`
}

// ConfidenceInterval is a two-sided interval around the mean.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// VarianceOutlier identifies an ingredient whose variance percentage deviates
// from the population mean by more than the configured sigma multiple.
type VarianceOutlier struct {
	IngredientID      IngredientID `json:"ingredient_id"`
	IngredientName    string       `json:"ingredient_name"`
	VariancePercent   float64      `json:"variance_percent"`
	DeviationFromMean float64      `json:"deviation_from_mean"`
}

// ConsumptionVarianceAnalysis is the period-scoped statistical summary of
// per-ingredient variance percentages. The statistics describe the
// population of quantity-variance percentages; the total variance percentage
// compares aggregate cost so ingredients with different units can be
// combined.
type ConsumptionVarianceAnalysis struct {
	PeriodID              string             `json:"period_id"`
	Location              string             `json:"location"`
	TotalTheoreticalCost  decimal.Decimal    `json:"total_theoretical_cost"`
	TotalActualCost       decimal.Decimal    `json:"total_actual_cost"`
	TotalVariancePercent  float64            `json:"total_variance_percent"`
	MeanVariancePercent   float64            `json:"mean_variance_percent"`
	MedianVariancePercent float64            `json:"median_variance_percent"`
	StdDeviation          float64            `json:"std_deviation"`
	ConfidenceInterval95  ConfidenceInterval `json:"confidence_interval_95"`
	Outliers              []VarianceOutlier  `json:"outliers"`
	IngredientCount       int                `json:"ingredient_count"`
}

// VariantEfficiency scores one recipe variant within a sales type. The
// efficiency score is averageConversionRate x profitMargin, a dimensionless
// reporting heuristic rather than a calibrated model.
type VariantEfficiency struct {
	RecipeCode            RecipeCode      `json:"recipe_code"`
	RecipeName            string          `json:"recipe_name"`
	VariantID             VariantID       `json:"variant_id"`
	VariantName           string          `json:"variant_name"`
	AverageConversionRate float64         `json:"average_conversion_rate"`
	Revenue               decimal.Decimal `json:"revenue"`
	Cost                  decimal.Decimal `json:"cost"`
	ProfitMargin          float64         `json:"profit_margin"`
	EfficiencyScore       float64         `json:"efficiency_score"`
}

// SalesTypeEfficiency aggregates fractional transactions of one sales type.
// CostEfficiency is cost divided by revenue, zero when revenue is zero.
type SalesTypeEfficiency struct {
	SalesType        FractionalSalesType `json:"sales_type"`
	TransactionCount int                 `json:"transaction_count"`
	QuantitySold     decimal.Decimal     `json:"quantity_sold"`
	Revenue          decimal.Decimal     `json:"revenue"`
	Cost             decimal.Decimal     `json:"cost"`
	CostEfficiency   float64             `json:"cost_efficiency"`
	Variants         []VariantEfficiency `json:"variants"`
}

// FractionalEfficiencyReport groups fractional sales by type for a period
// and location.
type FractionalEfficiencyReport struct {
	PeriodID string                `json:"period_id"`
	Location string                `json:"location"`
	ByType   []SalesTypeEfficiency `json:"by_type"`
}
