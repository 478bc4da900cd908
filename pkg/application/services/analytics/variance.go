package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// analyzeVariance computes the statistical summary over the population of
// per-ingredient variance percentages. The total variance percentage is
// taken over aggregate cost rather than quantity so that ingredients with
// different units can be combined.
func (s *Service) analyzeVariance(pctx PeriodContext, records []entities.IngredientConsumptionRecord) entities.ConsumptionVarianceAnalysis {
	analysis := entities.ConsumptionVarianceAnalysis{
		PeriodID:             pctx.PeriodID,
		Location:             pctx.Location,
		TotalTheoreticalCost: decimal.Zero,
		TotalActualCost:      decimal.Zero,
		Outliers:             []entities.VarianceOutlier{},
		IngredientCount:      len(records),
	}

	if len(records) == 0 {
		return analysis
	}

	population := make([]float64, 0, len(records))
	for _, record := range records {
		analysis.TotalTheoreticalCost = analysis.TotalTheoreticalCost.Add(record.TheoreticalCost)
		analysis.TotalActualCost = analysis.TotalActualCost.Add(record.ActualCost)
		population = append(population, record.VariancePercent)
	}
	analysis.TotalVariancePercent = variancePercent(analysis.TotalTheoreticalCost, analysis.TotalActualCost)

	analysis.MeanVariancePercent = mean(population)
	analysis.MedianVariancePercent = median(population)
	analysis.StdDeviation = populationStdDev(population, analysis.MeanVariancePercent)
	analysis.ConfidenceInterval95 = entities.ConfidenceInterval{
		Lower: analysis.MeanVariancePercent - s.opts.ConfidenceZ*analysis.StdDeviation,
		Upper: analysis.MeanVariancePercent + s.opts.ConfidenceZ*analysis.StdDeviation,
	}

	threshold := s.opts.OutlierSigma * analysis.StdDeviation
	if threshold > 0 {
		for _, record := range records {
			deviation := record.VariancePercent - analysis.MeanVariancePercent
			if math.Abs(deviation) > threshold {
				analysis.Outliers = append(analysis.Outliers, entities.VarianceOutlier{
					IngredientID:      record.IngredientID,
					IngredientName:    record.IngredientName,
					VariancePercent:   record.VariancePercent,
					DeviationFromMean: deviation,
				})
			}
		}
	}

	return analysis
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle element of the ascending-sorted values. For
// even-length populations the lower-middle element is used, so the result
// is always an observed value and tests are deterministic.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}

func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
