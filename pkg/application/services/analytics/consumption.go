package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

type ingredientAccumulator struct {
	ingredient  entities.Ingredient
	theoretical decimal.Decimal
	actual      decimal.Decimal
	fractional  decimal.Decimal
	wholeUnit   decimal.Decimal
	txCount     int
}

// aggregateIngredients accumulates theoretical and wastage-adjusted
// consumption per ingredient across all resolved transactions, splitting the
// actual quantity between fractional and whole-unit sales. Records are
// returned in first-seen order.
func (s *Service) aggregateIngredients(pctx PeriodContext, resolved []resolvedTransaction) []entities.IngredientConsumptionRecord {
	accums := make(map[entities.IngredientID]*ingredientAccumulator)
	var order []entities.IngredientID

	for _, r := range resolved {
		baseQty := r.tx.QuantitySold.Mul(r.mapping.ConversionRate)
		isFractional := r.mapping.ConversionRate.LessThan(one)

		for _, ing := range r.recipe.Ingredients {
			accum, exists := accums[ing.ID]
			if !exists {
				accum = &ingredientAccumulator{
					ingredient:  ing,
					theoretical: decimal.Zero,
					actual:      decimal.Zero,
					fractional:  decimal.Zero,
					wholeUnit:   decimal.Zero,
				}
				accums[ing.ID] = accum
				order = append(order, ing.ID)
			}

			theoretical := ing.Quantity.Mul(baseQty)
			actual := theoretical.Mul(one.Add(ing.WastagePercent.Div(hundred)))

			accum.theoretical = accum.theoretical.Add(theoretical)
			accum.actual = accum.actual.Add(actual)
			if isFractional {
				accum.fractional = accum.fractional.Add(actual)
			} else {
				accum.wholeUnit = accum.wholeUnit.Add(actual)
			}
			accum.txCount++
		}
	}

	records := make([]entities.IngredientConsumptionRecord, 0, len(order))
	for _, id := range order {
		accum := accums[id]
		variance := accum.actual.Sub(accum.theoretical)

		records = append(records, entities.IngredientConsumptionRecord{
			PeriodID:            pctx.PeriodID,
			Location:            pctx.Location,
			IngredientID:        id,
			IngredientName:      accum.ingredient.Name,
			Unit:                accum.ingredient.Unit,
			TheoreticalQuantity: accum.theoretical,
			ActualQuantity:      accum.actual,
			QuantityVariance:    variance,
			VariancePercent:     variancePercent(accum.theoretical, accum.actual),
			FractionalQuantity:  accum.fractional,
			WholeUnitQuantity:   accum.wholeUnit,
			CostPerUnit:         accum.ingredient.CostPerUnit,
			TheoreticalCost:     accum.theoretical.Mul(accum.ingredient.CostPerUnit),
			ActualCost:          accum.actual.Mul(accum.ingredient.CostPerUnit),
			CostVariance:        variance.Mul(accum.ingredient.CostPerUnit),
			TransactionCount:    accum.txCount,
		})
	}

	return records
}

type variantAccumulator struct {
	variant   entities.YieldVariant
	qtySold   decimal.Decimal
	revenue   decimal.Decimal
	cost      decimal.Decimal
	baseEquiv decimal.Decimal
	txCount   int
}

type recipeAccumulator struct {
	recipe       *entities.Recipe
	variants     map[entities.VariantID]*variantAccumulator
	variantOrder []entities.VariantID
}

// aggregateRecipes groups transactions by recipe, then by yield variant, and
// derives revenue, cost and base-recipe-equivalent production.
func (s *Service) aggregateRecipes(pctx PeriodContext, resolved []resolvedTransaction) []entities.RecipeConsumptionSummary {
	accums := make(map[entities.RecipeCode]*recipeAccumulator)
	var order []entities.RecipeCode

	for _, r := range resolved {
		recipeAccum, exists := accums[r.recipe.Code]
		if !exists {
			recipeAccum = &recipeAccumulator{
				recipe:   r.recipe,
				variants: make(map[entities.VariantID]*variantAccumulator),
			}
			accums[r.recipe.Code] = recipeAccum
			order = append(order, r.recipe.Code)
		}

		variantAccum, exists := recipeAccum.variants[r.variant.ID]
		if !exists {
			variantAccum = &variantAccumulator{
				variant:   *r.variant,
				qtySold:   decimal.Zero,
				revenue:   decimal.Zero,
				cost:      decimal.Zero,
				baseEquiv: decimal.Zero,
			}
			recipeAccum.variants[r.variant.ID] = variantAccum
			recipeAccum.variantOrder = append(recipeAccum.variantOrder, r.variant.ID)
		}

		variantAccum.qtySold = variantAccum.qtySold.Add(r.tx.QuantitySold)
		variantAccum.revenue = variantAccum.revenue.Add(r.tx.Revenue())
		variantAccum.cost = variantAccum.cost.Add(r.enriched.CostPrice)
		variantAccum.baseEquiv = variantAccum.baseEquiv.Add(r.tx.QuantitySold.Mul(r.mapping.ConversionRate))
		variantAccum.txCount++
	}

	summaries := make([]entities.RecipeConsumptionSummary, 0, len(order))
	for _, code := range order {
		recipeAccum := accums[code]

		summary := entities.RecipeConsumptionSummary{
			PeriodID:            pctx.PeriodID,
			Location:            pctx.Location,
			RecipeCode:          code,
			RecipeName:          recipeAccum.recipe.Name,
			QuantitySold:        decimal.Zero,
			Revenue:             decimal.Zero,
			Cost:                decimal.Zero,
			BaseRecipesProduced: decimal.Zero,
			Variants:            make([]entities.VariantSalesSummary, 0, len(recipeAccum.variantOrder)),
		}

		for _, variantID := range recipeAccum.variantOrder {
			va := recipeAccum.variants[variantID]
			summary.Variants = append(summary.Variants, entities.VariantSalesSummary{
				VariantID:            variantID,
				VariantName:          va.variant.Name,
				ConversionRate:       va.variant.ConversionRate,
				QuantitySold:         va.qtySold,
				Revenue:              va.revenue,
				Cost:                 va.cost,
				BaseRecipeEquivalent: va.baseEquiv,
				TransactionCount:     va.txCount,
			})
			summary.QuantitySold = summary.QuantitySold.Add(va.qtySold)
			summary.Revenue = summary.Revenue.Add(va.revenue)
			summary.Cost = summary.Cost.Add(va.cost)
			summary.BaseRecipesProduced = summary.BaseRecipesProduced.Add(va.baseEquiv)
		}

		summary.GrossProfit = summary.Revenue.Sub(summary.Cost)
		summary.ProfitMargin = profitMargin(summary.Revenue, summary.Cost)
		summaries = append(summaries, summary)
	}

	return summaries
}

// aggregateLocation rolls all recipes of the period up into one location
// record with a revenue ranking of fractional variants. The ranking is a
// stable sort by revenue descending, so equal revenues keep first-seen
// order.
func (s *Service) aggregateLocation(pctx PeriodContext, summaries []entities.RecipeConsumptionSummary) entities.LocationConsumptionAnalytics {
	analytics := entities.LocationConsumptionAnalytics{
		PeriodID:     pctx.PeriodID,
		Location:     pctx.Location,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		RecipeCount:  len(summaries),
	}

	var fractional []entities.TopFractionalVariant
	for _, summary := range summaries {
		analytics.TotalRevenue = analytics.TotalRevenue.Add(summary.Revenue)
		analytics.TotalCost = analytics.TotalCost.Add(summary.Cost)

		for _, variant := range summary.Variants {
			analytics.TransactionCount += variant.TransactionCount
			if variant.ConversionRate.LessThan(one) {
				fractional = append(fractional, entities.TopFractionalVariant{
					RecipeCode:  summary.RecipeCode,
					RecipeName:  summary.RecipeName,
					VariantID:   variant.VariantID,
					VariantName: variant.VariantName,
					Revenue:     variant.Revenue,
				})
			}
		}
	}

	analytics.GrossProfit = analytics.TotalRevenue.Sub(analytics.TotalCost)
	analytics.ProfitMargin = profitMargin(analytics.TotalRevenue, analytics.TotalCost)

	sort.SliceStable(fractional, func(i, j int) bool {
		return fractional[i].Revenue.GreaterThan(fractional[j].Revenue)
	})
	if len(fractional) > s.opts.TopVariants {
		fractional = fractional[:s.opts.TopVariants]
	}
	analytics.TopFractionalVariants = fractional

	return analytics
}

// variancePercent computes (actual - theoretical) / theoretical * 100,
// defined as zero when the theoretical quantity is zero.
func variancePercent(theoretical, actual decimal.Decimal) float64 {
	if theoretical.IsZero() {
		return 0
	}
	return actual.Sub(theoretical).Div(theoretical).Mul(hundred).InexactFloat64()
}

// profitMargin computes (revenue - cost) / revenue, defined as zero when
// revenue is zero.
func profitMargin(revenue, cost decimal.Decimal) float64 {
	if revenue.IsZero() {
		return 0
	}
	return revenue.Sub(cost).Div(revenue).InexactFloat64()
}
