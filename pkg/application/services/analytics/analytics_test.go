package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svctesting "github.com/rkaliyev/fractional-inventory/pkg/application/services/testing"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/repositories/memory"
)

var periodStart = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// cafeScenario builds a two-recipe catalog with fractional and whole yield
// variants used across the analytics tests.
func cafeScenario() (*memory.RecipeRepository, *memory.MappingRepository) {
	recipes := memory.NewRecipeRepository()
	mappings := memory.NewMappingRepository()

	recipes.AddRecipe(svctesting.MustCreateRecipe("PIZZA", "Margherita Pizza",
		[]entities.Ingredient{
			{ID: "CHEESE", Name: "Cheese", Type: entities.IngredientProduct,
				Quantity: decimal.NewFromInt(200), Unit: "g",
				CostPerUnit: decimal.RequireFromString("0.01"), WastagePercent: decimal.NewFromInt(5)},
			{ID: "FLOUR", Name: "Flour", Type: entities.IngredientProduct,
				Quantity: decimal.NewFromInt(300), Unit: "g",
				CostPerUnit: decimal.RequireFromString("0.002"), WastagePercent: decimal.Zero},
		},
		[]entities.YieldVariant{
			{ID: "WHOLE", Name: "Whole", ConversionRate: decimal.NewFromInt(1),
				CostPerUnit: decimal.RequireFromString("8.00")},
			{ID: "HALF", Name: "Half", ConversionRate: decimal.RequireFromString("0.5"),
				CostPerUnit: decimal.RequireFromString("4.50")},
			{ID: "SLICE", Name: "Slice", ConversionRate: decimal.RequireFromString("0.125"),
				CostPerUnit: decimal.RequireFromString("1.20")},
		}))

	recipes.AddRecipe(svctesting.MustCreateRecipe("SALAD", "Garden Salad",
		[]entities.Ingredient{
			{ID: "LETTUCE", Name: "Lettuce", Type: entities.IngredientProduct,
				Quantity: decimal.NewFromInt(150), Unit: "g",
				CostPerUnit: decimal.RequireFromString("0.004"), WastagePercent: decimal.NewFromInt(10)},
		},
		[]entities.YieldVariant{
			{ID: "WHOLE", Name: "Whole", ConversionRate: decimal.NewFromInt(1),
				CostPerUnit: decimal.RequireFromString("2.00")},
			{ID: "HALF", Name: "Half", ConversionRate: decimal.RequireFromString("0.5"),
				CostPerUnit: decimal.RequireFromString("1.10")},
		}))

	mappings.AddMapping(svctesting.MustCreateMapping("POS-PW", "PIZZA", "WHOLE", "1"))
	mappings.AddMapping(svctesting.MustCreateMapping("POS-PH", "PIZZA", "HALF", "0.5"))
	mappings.AddMapping(svctesting.MustCreateMapping("POS-PS", "PIZZA", "SLICE", "0.125"))
	mappings.AddMapping(svctesting.MustCreateMapping("POS-SW", "SALAD", "WHOLE", "1"))
	mappings.AddMapping(svctesting.MustCreateMapping("POS-SH", "SALAD", "HALF", "0.5"))

	return recipes, mappings
}

func cafeContext(transactions []entities.POSTransaction) PeriodContext {
	recipes, mappings := cafeScenario()
	return PeriodContext{
		PeriodID:     "2025-06",
		Location:     "DOWNTOWN",
		Transactions: transactions,
		Mappings:     mappings,
		Recipes:      recipes,
	}
}

func TestCalculatePeriodConsumption_IngredientAggregation(t *testing.T) {
	transactions := []entities.POSTransaction{
		// 2 slices: base 0.25 -> cheese theo 50, actual 52.5; flour theo 75, actual 75
		svctesting.MustCreateTransaction("TX1", "POS-PS", "2", "3.50", periodStart, "DOWNTOWN"),
		// 1 whole: base 1 -> cheese theo 200, actual 210; flour theo 300, actual 300
		svctesting.MustCreateTransaction("TX2", "POS-PW", "1", "22.00", periodStart.Add(time.Minute), "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)
	require.Len(t, report.IngredientRecords, 2)

	cheese := report.IngredientRecords[0]
	assert.Equal(t, entities.IngredientID("CHEESE"), cheese.IngredientID)
	assert.True(t, cheese.TheoreticalQuantity.Equal(decimal.NewFromInt(250)),
		"theoretical %s", cheese.TheoreticalQuantity)
	assert.True(t, cheese.ActualQuantity.Equal(decimal.RequireFromString("262.5")),
		"actual %s", cheese.ActualQuantity)
	assert.True(t, cheese.FractionalQuantity.Equal(decimal.RequireFromString("52.5")),
		"fractional %s", cheese.FractionalQuantity)
	assert.True(t, cheese.WholeUnitQuantity.Equal(decimal.NewFromInt(210)),
		"whole %s", cheese.WholeUnitQuantity)
	assert.Equal(t, 2, cheese.TransactionCount)
	assert.InDelta(t, 5.0, cheese.VariancePercent, 1e-9)

	// Cost invariants: actualCost = theoreticalCost + costVariance and
	// costVariance = quantityVariance * costPerUnit.
	for _, record := range report.IngredientRecords {
		assert.True(t, record.ActualCost.Equal(record.TheoreticalCost.Add(record.CostVariance)),
			"cost invariant broken for %s", record.IngredientID)
		assert.True(t, record.CostVariance.Equal(record.QuantityVariance.Mul(record.CostPerUnit)),
			"cost variance invariant broken for %s", record.IngredientID)
	}
}

func TestCalculatePeriodConsumption_VarianceCorrectness(t *testing.T) {
	// One salad: lettuce theoretical 150, actual 165 -> 10% variance.
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-SW", "1", "6.00", periodStart, "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)
	require.Len(t, report.IngredientRecords, 1)
	assert.InDelta(t, 10.0, report.IngredientRecords[0].VariancePercent, 1e-9)
}

func TestCalculatePeriodConsumption_RecipeAggregation(t *testing.T) {
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-PS", "4", "3.50", periodStart, "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX2", "POS-PS", "2", "3.50", periodStart.Add(time.Minute), "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX3", "POS-PW", "1", "22.00", periodStart.Add(2*time.Minute), "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)
	require.Len(t, report.RecipeSummaries, 1)

	pizza := report.RecipeSummaries[0]
	assert.Equal(t, entities.RecipeCode("PIZZA"), pizza.RecipeCode)
	// revenue = 6*3.50 + 22.00 = 43.00; cost = 6*1.20 + 8.00 = 15.20
	assert.True(t, pizza.Revenue.Equal(decimal.RequireFromString("43.00")), "revenue %s", pizza.Revenue)
	assert.True(t, pizza.Cost.Equal(decimal.RequireFromString("15.20")), "cost %s", pizza.Cost)
	assert.InDelta(t, (43.0-15.2)/43.0, pizza.ProfitMargin, 1e-9)
	// base equivalents: 6*0.125 + 1 = 1.75
	assert.True(t, pizza.BaseRecipesProduced.Equal(decimal.RequireFromString("1.75")),
		"base recipes %s", pizza.BaseRecipesProduced)

	require.Len(t, pizza.Variants, 2)
	slice := pizza.Variants[0]
	assert.Equal(t, entities.VariantID("SLICE"), slice.VariantID)
	assert.Equal(t, 2, slice.TransactionCount)
	assert.True(t, slice.QuantitySold.Equal(decimal.NewFromInt(6)), "slices sold %s", slice.QuantitySold)
}

func TestCalculatePeriodConsumption_ZeroRevenueMargin(t *testing.T) {
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-PS", "1", "0", periodStart, "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)
	require.Len(t, report.RecipeSummaries, 1)
	assert.Equal(t, 0.0, report.RecipeSummaries[0].ProfitMargin)
	assert.Equal(t, 0.0, report.LocationAnalytics.ProfitMargin)
}

func TestCalculatePeriodConsumption_TopFractionalVariants(t *testing.T) {
	transactions := []entities.POSTransaction{
		// pizza slices: revenue 14.00
		svctesting.MustCreateTransaction("TX1", "POS-PS", "4", "3.50", periodStart, "DOWNTOWN"),
		// salad halves: revenue 14.00 (tie, seen after pizza slices)
		svctesting.MustCreateTransaction("TX2", "POS-SH", "4", "3.50", periodStart.Add(time.Minute), "DOWNTOWN"),
		// pizza halves: revenue 24.00
		svctesting.MustCreateTransaction("TX3", "POS-PH", "2", "12.00", periodStart.Add(2*time.Minute), "DOWNTOWN"),
		// whole sales must not rank
		svctesting.MustCreateTransaction("TX4", "POS-PW", "3", "22.00", periodStart.Add(3*time.Minute), "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)

	top := report.LocationAnalytics.TopFractionalVariants
	require.Len(t, top, 3)
	assert.Equal(t, entities.VariantID("HALF"), top[0].VariantID)
	assert.Equal(t, entities.RecipeCode("PIZZA"), top[0].RecipeCode)
	// tie at 14.00 keeps first-seen order: pizza slice before salad half
	assert.Equal(t, entities.RecipeCode("PIZZA"), top[1].RecipeCode)
	assert.Equal(t, entities.VariantID("SLICE"), top[1].VariantID)
	assert.Equal(t, entities.RecipeCode("SALAD"), top[2].RecipeCode)
}

func TestAnalyzeVariance_OffsettingVariances(t *testing.T) {
	// Offsetting errors: {theoretical 100, actual 105} and {theoretical 200,
	// actual 190} give +5% and -5%, a zero mean, and non-zero individual
	// variances that the analysis must still surface.
	records := []entities.IngredientConsumptionRecord{
		{IngredientID: "A", TheoreticalQuantity: decimal.NewFromInt(100),
			ActualQuantity: decimal.NewFromInt(105), VariancePercent: 5,
			TheoreticalCost: decimal.NewFromInt(100), ActualCost: decimal.NewFromInt(105)},
		{IngredientID: "B", TheoreticalQuantity: decimal.NewFromInt(200),
			ActualQuantity: decimal.NewFromInt(190), VariancePercent: -5,
			TheoreticalCost: decimal.NewFromInt(200), ActualCost: decimal.NewFromInt(190)},
	}

	service := NewService()
	pctx := PeriodContext{PeriodID: "2025-06", Location: "DOWNTOWN"}
	analysis := service.analyzeVariance(pctx, records)

	assert.InDelta(t, 0.0, analysis.MeanVariancePercent, 1e-9)
	// lower-middle convention for even counts: sorted {-5, 5} -> -5
	assert.InDelta(t, -5.0, analysis.MedianVariancePercent, 1e-9)
	assert.InDelta(t, 5.0, analysis.StdDeviation, 1e-9)
	assert.InDelta(t, -9.8, analysis.ConfidenceInterval95.Lower, 1e-9)
	assert.InDelta(t, 9.8, analysis.ConfidenceInterval95.Upper, 1e-9)
	// neither record is beyond 2 sigma (10.0) from the mean
	assert.Empty(t, analysis.Outliers)
	// totals: (295 - 300) / 300 * 100
	assert.InDelta(t, -5.0/3.0, analysis.TotalVariancePercent, 1e-9)
}

func TestAnalyzeVariance_Outliers(t *testing.T) {
	// Eight well-behaved ingredients and one with a 45% variance; the ninth
	// sits about 2.8 sigma from the mean and must be flagged.
	var records []entities.IngredientConsumptionRecord
	for i := 0; i < 8; i++ {
		records = append(records, entities.IngredientConsumptionRecord{
			IngredientID:    entities.IngredientID(fmt.Sprintf("ING-%d", i)),
			VariancePercent: 0,
			TheoreticalCost: decimal.NewFromInt(10),
			ActualCost:      decimal.NewFromInt(10),
		})
	}
	records = append(records, entities.IngredientConsumptionRecord{
		IngredientID:    "WAYWARD",
		IngredientName:  "Wayward",
		VariancePercent: 45,
		TheoreticalCost: decimal.NewFromInt(10),
		ActualCost:      decimal.RequireFromString("14.5"),
	})

	service := NewService()
	analysis := service.analyzeVariance(PeriodContext{PeriodID: "P", Location: "L"}, records)

	require.Len(t, analysis.Outliers, 1)
	assert.Equal(t, entities.IngredientID("WAYWARD"), analysis.Outliers[0].IngredientID)
	assert.Greater(t, analysis.Outliers[0].DeviationFromMean, 0.0)
}

func TestAnalyzeVariance_EmptyPopulation(t *testing.T) {
	service := NewService()
	analysis := service.analyzeVariance(PeriodContext{PeriodID: "P", Location: "L"}, nil)

	assert.Equal(t, 0.0, analysis.MeanVariancePercent)
	assert.Equal(t, 0.0, analysis.TotalVariancePercent)
	assert.Empty(t, analysis.Outliers)
	assert.Equal(t, 0, analysis.IngredientCount)
}

func TestCalculatePeriodConsumption_EfficiencyReport(t *testing.T) {
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-PS", "4", "3.50", periodStart, "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX2", "POS-PH", "2", "12.00", periodStart.Add(time.Minute), "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX3", "POS-SH", "1", "3.50", periodStart.Add(2*time.Minute), "DOWNTOWN"),
		// whole sale excluded from fractional efficiency
		svctesting.MustCreateTransaction("TX4", "POS-PW", "1", "22.00", periodStart.Add(3*time.Minute), "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)

	require.Len(t, report.EfficiencyReport.ByType, 2)

	slices := report.EfficiencyReport.ByType[0]
	assert.Equal(t, entities.SaleSlice, slices.SalesType)
	assert.Equal(t, 1, slices.TransactionCount)
	// cost 4*1.20 = 4.80, revenue 14.00
	assert.InDelta(t, 4.8/14.0, slices.CostEfficiency, 1e-9)

	halves := report.EfficiencyReport.ByType[1]
	assert.Equal(t, entities.SaleHalf, halves.SalesType)
	assert.Equal(t, 2, halves.TransactionCount)
	require.Len(t, halves.Variants, 2)

	pizzaHalf := halves.Variants[0]
	assert.Equal(t, entities.RecipeCode("PIZZA"), pizzaHalf.RecipeCode)
	assert.InDelta(t, 0.5, pizzaHalf.AverageConversionRate, 1e-9)
	// revenue 24.00, cost 9.00 -> margin 0.625, score 0.3125
	assert.InDelta(t, 0.625, pizzaHalf.ProfitMargin, 1e-9)
	assert.InDelta(t, 0.3125, pizzaHalf.EfficiencyScore, 1e-9)
}

func TestCalculatePeriodConsumption_UnmappedTransactions(t *testing.T) {
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-NOPE", "1", "2.00", periodStart, "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX2", "POS-PS", "1", "3.50", periodStart.Add(time.Minute), "DOWNTOWN"),
	}

	report, err := NewService().CalculatePeriodConsumption(cafeContext(transactions))
	require.NoError(t, err)
	assert.Equal(t, 1, report.UnmappedTransactions)
	assert.Len(t, report.IngredientRecords, 2)
}

func TestCalculatePeriodConsumption_Idempotent(t *testing.T) {
	transactions := []entities.POSTransaction{
		svctesting.MustCreateTransaction("TX1", "POS-PS", "4", "3.50", periodStart, "DOWNTOWN"),
		svctesting.MustCreateTransaction("TX2", "POS-SH", "2", "3.00", periodStart.Add(time.Minute), "DOWNTOWN"),
	}

	service := NewService()
	pctx := cafeContext(transactions)

	first, err := service.CalculatePeriodConsumption(pctx)
	require.NoError(t, err)
	second, err := service.CalculatePeriodConsumption(pctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
