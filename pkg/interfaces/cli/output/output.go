package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rkaliyev/fractional-inventory/pkg/application/dto"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format         string
	OutputDir      string
	Verbose        bool
	ProcessingTime time.Duration
}

// runReport is the combined serializable result of one run. Metrics is nil
// when stock projection was not requested.
type runReport struct {
	Batch   *dto.BatchResult                     `json:"batch"`
	Report  *dto.ConsumptionReport               `json:"report"`
	Metrics *entities.RealTimeConsumptionMetrics `json:"metrics,omitempty"`
}

// Generate creates output in the specified format
func Generate(batch *dto.BatchResult, report *dto.ConsumptionReport, metrics *entities.RealTimeConsumptionMetrics, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(batch, report, metrics, config)
	case "json":
		return generateJSONOutput(batch, report, metrics, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(batch *dto.BatchResult, report *dto.ConsumptionReport, metrics *entities.RealTimeConsumptionMetrics, config Config) error {
	fmt.Printf("Consumption Run Summary\n")
	fmt.Printf("=======================\n\n")

	summary := batch.Summary
	fmt.Printf("Transactions: %d (%d succeeded, %d failed)\n",
		summary.TransactionCount, summary.SucceededCount, summary.FailedCount)
	fmt.Printf("Total Cost: %s\n", summary.TotalCost)
	fmt.Printf("Total Wastage: %s\n", summary.TotalWastage)
	fmt.Printf("Ingredients Affected: %d\n", summary.IngredientsAffected)
	fmt.Printf("Processing Time: %v\n\n", config.ProcessingTime)

	printFailures(batch)
	printIngredients(report)
	printVariance(report)
	printTopVariants(report)
	if metrics != nil {
		printMetrics(metrics)
	}

	if config.OutputDir != "" {
		return writeReportFile(batch, report, metrics, config, "consumption_report.json")
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(batch *dto.BatchResult, report *dto.ConsumptionReport, metrics *entities.RealTimeConsumptionMetrics, config Config) error {
	if config.OutputDir == "" {
		jsonData, err := json.MarshalIndent(runReport{Batch: batch, Report: report, Metrics: metrics}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	return writeReportFile(batch, report, metrics, config, "consumption_report.json")
}

func writeReportFile(batch *dto.BatchResult, report *dto.ConsumptionReport, metrics *entities.RealTimeConsumptionMetrics, config Config, name string) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(runReport{Batch: batch, Report: report, Metrics: metrics}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("Results saved to: %s\n", filename)
	}

	return nil
}

func printFailures(batch *dto.BatchResult) {
	failed := 0
	for _, result := range batch.Results {
		if !result.Success {
			failed++
		}
	}
	if failed == 0 {
		return
	}

	fmt.Printf("Failed Transactions:\n")
	for _, result := range batch.Results {
		if result.Success {
			continue
		}
		fmt.Printf("  %s (%s):\n", result.TransactionID, result.POSItemCode)
		for _, msg := range result.Errors {
			fmt.Printf("    - %s\n", msg)
		}
	}
	fmt.Println()
}

func printIngredients(report *dto.ConsumptionReport) {
	if len(report.IngredientRecords) == 0 {
		return
	}

	fmt.Printf("Ingredient Consumption:\n")
	fmt.Printf("%-12s %-20s %-12s %-12s %-10s %-12s\n",
		"Ingredient", "Name", "Theoretical", "Actual", "Var %", "Cost")
	fmt.Printf("%-12s %-20s %-12s %-12s %-10s %-12s\n",
		"------------", "--------------------", "------------", "------------", "----------", "------------")

	for _, rec := range report.IngredientRecords {
		fmt.Printf("%-12s %-20s %-12s %-12s %-10.2f %-12s\n",
			rec.IngredientID,
			rec.IngredientName,
			rec.TheoreticalQuantity,
			rec.ActualQuantity,
			rec.VariancePercent,
			rec.ActualCost)
	}
	fmt.Println()
}

func printVariance(report *dto.ConsumptionReport) {
	va := report.VarianceAnalysis
	if va.IngredientCount == 0 {
		return
	}

	fmt.Printf("Variance Analysis:\n")
	fmt.Printf("  Total Variance: %.2f%% (theoretical cost %s vs actual %s)\n",
		va.TotalVariancePercent, va.TotalTheoreticalCost, va.TotalActualCost)
	fmt.Printf("  Mean: %.2f%%  Median: %.2f%%  StdDev: %.2f\n",
		va.MeanVariancePercent, va.MedianVariancePercent, va.StdDeviation)
	fmt.Printf("  95%% CI: [%.2f, %.2f]\n",
		va.ConfidenceInterval95.Lower, va.ConfidenceInterval95.Upper)

	if len(va.Outliers) > 0 {
		fmt.Printf("  Outliers:\n")
		for _, outlier := range va.Outliers {
			fmt.Printf("    %s (%s): %.2f%% (%.2f from mean)\n",
				outlier.IngredientID, outlier.IngredientName,
				outlier.VariancePercent, outlier.DeviationFromMean)
		}
	}
	fmt.Println()
}

func printTopVariants(report *dto.ConsumptionReport) {
	la := report.LocationAnalytics
	if len(la.TopFractionalVariants) == 0 {
		return
	}

	fmt.Printf("Top Fractional Variants by Revenue:\n")
	for i, variant := range la.TopFractionalVariants {
		fmt.Printf("  %d. %s / %s: %s\n", i+1, variant.RecipeName, variant.VariantName, variant.Revenue)
	}
	fmt.Println()
}

func printMetrics(metrics *entities.RealTimeConsumptionMetrics) {
	fmt.Printf("Stock Status (%s):\n", metrics.Location)
	fmt.Printf("  Total Stock Value: %s\n", metrics.TotalStockValue)
	fmt.Printf("  Out of Stock: %d  Critical: %d  Low: %d\n",
		metrics.OutOfStockCount, metrics.CriticalCount, metrics.LowCount)

	if len(metrics.Alerts) > 0 {
		fmt.Printf("  Alerts:\n")
		for _, alert := range metrics.Alerts {
			fmt.Printf("    [%s] %s\n", alert.Severity, alert.Message)
		}
	}
	fmt.Println()
}
