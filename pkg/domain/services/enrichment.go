package services

import (
	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

var (
	rateWhole   = decimal.NewFromInt(1)
	rateHalf    = decimal.RequireFromString("0.5")
	rateQuarter = decimal.RequireFromString("0.25")
	rateSlice   = decimal.RequireFromString("0.125")
)

// ClassifySalesType maps a conversion rate to its fractional sales type.
// Rates that match no standard portion are classified as Custom; rates of
// one or more are whole-unit sales.
func ClassifySalesType(conversionRate decimal.Decimal) entities.FractionalSalesType {
	switch {
	case conversionRate.GreaterThanOrEqual(rateWhole):
		return entities.SaleWhole
	case conversionRate.Equal(rateHalf):
		return entities.SaleHalf
	case conversionRate.Equal(rateQuarter):
		return entities.SaleQuarter
	case conversionRate.Equal(rateSlice):
		return entities.SaleSlice
	default:
		return entities.SaleCustom
	}
}

// EnrichTransaction joins a raw POS transaction with its mapping and recipe
// variant, producing the enriched transaction used by reporting. Cost price
// is the variant unit cost times quantity sold; gross profit is revenue
// minus cost price. The enriched fields are computed once and never mutated.
func EnrichTransaction(tx entities.POSTransaction, mapping *entities.RecipeMapping, variant *entities.YieldVariant) entities.FractionalSalesTransaction {
	costPrice := variant.CostPerUnit.Mul(tx.QuantitySold)
	return entities.FractionalSalesTransaction{
		POSTransaction: tx,
		BaseRecipeCode: mapping.RecipeCode,
		VariantID:      mapping.VariantID,
		ConversionRate: mapping.ConversionRate,
		CostPrice:      costPrice,
		GrossProfit:    tx.Revenue().Sub(costPrice),
		SalesType:      ClassifySalesType(mapping.ConversionRate),
	}
}
