package analytics

import (
	"errors"
	"fmt"

	"github.com/rkaliyev/fractional-inventory/pkg/application/dto"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/repositories"
	domainservices "github.com/rkaliyev/fractional-inventory/pkg/domain/services"
)

// Options holds the statistical tunables of the analytics service.
type Options struct {
	// OutlierSigma is the number of standard deviations beyond which an
	// ingredient's variance counts as an outlier.
	OutlierSigma float64
	// ConfidenceZ is the z-value of the reported confidence interval.
	ConfidenceZ float64
	// TopVariants is the length of the fractional-variant revenue ranking.
	TopVariants int
}

// DefaultOptions returns the standard reporting configuration: 2-sigma
// outliers, a 95% Gaussian confidence interval and a top-5 ranking.
func DefaultOptions() Options {
	return Options{
		OutlierSigma: 2,
		ConfidenceZ:  1.96,
		TopVariants:  5,
	}
}

// PeriodContext bundles the inputs of one reporting run. The analytics
// service re-derives consumption from raw transactions and reference data
// rather than from batch-processor state, so reports stay independent of any
// particular batch run.
type PeriodContext struct {
	PeriodID     string
	Location     string
	Transactions []entities.POSTransaction
	Mappings     repositories.MappingRepository
	Recipes      repositories.RecipeRepository
}

// Service computes period consumption and variance analytics. All methods
// are pure functions of their inputs; a single Service may be shared across
// goroutines and locations without coordination.
type Service struct {
	opts Options
}

// NewService creates an analytics service with default options
func NewService() *Service {
	return NewServiceWithOptions(DefaultOptions())
}

// NewServiceWithOptions creates an analytics service with custom options
func NewServiceWithOptions(opts Options) *Service {
	if opts.OutlierSigma <= 0 {
		opts.OutlierSigma = 2
	}
	if opts.ConfidenceZ <= 0 {
		opts.ConfidenceZ = 1.96
	}
	if opts.TopVariants <= 0 {
		opts.TopVariants = 5
	}
	return &Service{opts: opts}
}

// resolvedTransaction is a transaction joined with its reference data.
type resolvedTransaction struct {
	tx       entities.POSTransaction
	mapping  *entities.RecipeMapping
	recipe   *entities.Recipe
	variant  *entities.YieldVariant
	enriched entities.FractionalSalesTransaction
}

// CalculatePeriodConsumption builds the full analytics bundle for one period
// and location. Transactions whose mapping, recipe or variant cannot be
// resolved are excluded from the aggregates and counted in the report's
// UnmappedTransactions; an infrastructure failure in the repositories is the
// only error condition.
func (s *Service) CalculatePeriodConsumption(pctx PeriodContext) (*dto.ConsumptionReport, error) {
	resolved, unmapped, err := s.resolve(pctx)
	if err != nil {
		return nil, fmt.Errorf("period %s: %w", pctx.PeriodID, err)
	}

	ingredientRecords := s.aggregateIngredients(pctx, resolved)
	recipeSummaries := s.aggregateRecipes(pctx, resolved)
	locationAnalytics := s.aggregateLocation(pctx, recipeSummaries)
	varianceAnalysis := s.analyzeVariance(pctx, ingredientRecords)
	efficiencyReport := s.buildEfficiencyReport(pctx, resolved)

	return &dto.ConsumptionReport{
		PeriodID:             pctx.PeriodID,
		Location:             pctx.Location,
		IngredientRecords:    ingredientRecords,
		RecipeSummaries:      recipeSummaries,
		LocationAnalytics:    locationAnalytics,
		VarianceAnalysis:     varianceAnalysis,
		EfficiencyReport:     efficiencyReport,
		UnmappedTransactions: unmapped,
	}, nil
}

// resolve joins every transaction with its mapping, recipe and variant.
func (s *Service) resolve(pctx PeriodContext) ([]resolvedTransaction, int, error) {
	resolved := make([]resolvedTransaction, 0, len(pctx.Transactions))
	unmapped := 0

	for _, tx := range pctx.Transactions {
		mapping, err := pctx.Mappings.GetMapping(tx.POSItemCode)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				unmapped++
				continue
			}
			return nil, 0, err
		}

		recipe, err := pctx.Recipes.GetRecipe(mapping.RecipeCode)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				unmapped++
				continue
			}
			return nil, 0, err
		}

		variant, ok := recipe.Variant(mapping.VariantID)
		if !ok {
			unmapped++
			continue
		}

		resolved = append(resolved, resolvedTransaction{
			tx:       tx,
			mapping:  mapping,
			recipe:   recipe,
			variant:  variant,
			enriched: domainservices.EnrichTransaction(tx, mapping, variant),
		})
	}

	return resolved, unmapped, nil
}
