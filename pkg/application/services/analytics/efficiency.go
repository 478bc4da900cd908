package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

type efficiencyVariantKey struct {
	recipeCode entities.RecipeCode
	variantID  entities.VariantID
}

type efficiencyVariantAccumulator struct {
	recipe  *entities.Recipe
	variant entities.YieldVariant
	revenue decimal.Decimal
	cost    decimal.Decimal
	rateSum float64
	txCount int
}

type salesTypeAccumulator struct {
	txCount      int
	qtySold      decimal.Decimal
	revenue      decimal.Decimal
	cost         decimal.Decimal
	variants     map[efficiencyVariantKey]*efficiencyVariantAccumulator
	variantOrder []efficiencyVariantKey
}

// buildEfficiencyReport groups fractional transactions by sales type, and
// within each type by recipe and variant. The per-variant efficiency score
// is averageConversionRate x profitMargin; this is a reporting heuristic
// for comparing portioning strategies, not a calibrated business metric.
func (s *Service) buildEfficiencyReport(pctx PeriodContext, resolved []resolvedTransaction) entities.FractionalEfficiencyReport {
	report := entities.FractionalEfficiencyReport{
		PeriodID: pctx.PeriodID,
		Location: pctx.Location,
		ByType:   []entities.SalesTypeEfficiency{},
	}

	byType := make(map[entities.FractionalSalesType]*salesTypeAccumulator)
	var typeOrder []entities.FractionalSalesType

	for _, r := range resolved {
		if !r.enriched.IsFractional() {
			continue
		}

		salesType := r.enriched.SalesType
		typeAccum, exists := byType[salesType]
		if !exists {
			typeAccum = &salesTypeAccumulator{
				qtySold:  decimal.Zero,
				revenue:  decimal.Zero,
				cost:     decimal.Zero,
				variants: make(map[efficiencyVariantKey]*efficiencyVariantAccumulator),
			}
			byType[salesType] = typeAccum
			typeOrder = append(typeOrder, salesType)
		}

		typeAccum.txCount++
		typeAccum.qtySold = typeAccum.qtySold.Add(r.tx.QuantitySold)
		typeAccum.revenue = typeAccum.revenue.Add(r.tx.Revenue())
		typeAccum.cost = typeAccum.cost.Add(r.enriched.CostPrice)

		key := efficiencyVariantKey{recipeCode: r.recipe.Code, variantID: r.variant.ID}
		variantAccum, exists := typeAccum.variants[key]
		if !exists {
			variantAccum = &efficiencyVariantAccumulator{
				recipe:  r.recipe,
				variant: *r.variant,
				revenue: decimal.Zero,
				cost:    decimal.Zero,
			}
			typeAccum.variants[key] = variantAccum
			typeAccum.variantOrder = append(typeAccum.variantOrder, key)
		}

		variantAccum.revenue = variantAccum.revenue.Add(r.tx.Revenue())
		variantAccum.cost = variantAccum.cost.Add(r.enriched.CostPrice)
		variantAccum.rateSum += r.mapping.ConversionRate.InexactFloat64()
		variantAccum.txCount++
	}

	for _, salesType := range typeOrder {
		typeAccum := byType[salesType]

		typeEfficiency := entities.SalesTypeEfficiency{
			SalesType:        salesType,
			TransactionCount: typeAccum.txCount,
			QuantitySold:     typeAccum.qtySold,
			Revenue:          typeAccum.revenue,
			Cost:             typeAccum.cost,
			CostEfficiency:   costEfficiency(typeAccum.revenue, typeAccum.cost),
			Variants:         make([]entities.VariantEfficiency, 0, len(typeAccum.variantOrder)),
		}

		for _, key := range typeAccum.variantOrder {
			va := typeAccum.variants[key]
			avgRate := va.rateSum / float64(va.txCount)
			margin := profitMargin(va.revenue, va.cost)

			typeEfficiency.Variants = append(typeEfficiency.Variants, entities.VariantEfficiency{
				RecipeCode:            key.recipeCode,
				RecipeName:            va.recipe.Name,
				VariantID:             key.variantID,
				VariantName:           va.variant.Name,
				AverageConversionRate: avgRate,
				Revenue:               va.revenue,
				Cost:                  va.cost,
				ProfitMargin:          margin,
				EfficiencyScore:       avgRate * margin,
			})
		}

		report.ByType = append(report.ByType, typeEfficiency)
	}

	return report
}

// costEfficiency computes cost divided by revenue, defined as zero when
// revenue is zero.
func costEfficiency(revenue, cost decimal.Decimal) float64 {
	if revenue.IsZero() {
		return 0
	}
	return cost.Div(revenue).InexactFloat64()
}
