package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rkaliyev/fractional-inventory/pkg/application/services/analytics"
	"github.com/rkaliyev/fractional-inventory/pkg/application/services/batch"
	"github.com/rkaliyev/fractional-inventory/pkg/application/services/deduction"
	"github.com/rkaliyev/fractional-inventory/pkg/application/services/metrics"
	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/config"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/events"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/logging"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/repositories/memory"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/repositories/scenario"
	"github.com/rkaliyev/fractional-inventory/pkg/interfaces/cli/output"
)

// Config holds configuration for the run command
type Config struct {
	ScenarioDir      string
	RecipesFile      string
	MappingsFile     string
	TransactionsFile string
	InventoryFile    string
	ConfigFile       string
	PeriodID         string
	Location         string
	OutputDir        string
	Format           string
	Verbose          bool
	Metrics          bool
	Help             bool
}

// RunCommand loads a consumption scenario, replays its transactions against
// the opening inventory and reports consumption analytics.
type RunCommand struct {
	config Config
}

// NewRunCommand creates a new run command with the given configuration
func NewRunCommand(config Config) *RunCommand {
	return &RunCommand{
		config: config,
	}
}

// Execute runs the command
func (c *RunCommand) Execute() error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	appConfig, err := c.resolveAppConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	loader := scenario.NewLoader()

	recipes, err := loader.LoadRecipes(files["Recipes"])
	if err != nil {
		return fmt.Errorf("error loading recipes: %w", err)
	}

	mappings, err := loader.LoadMappings(files["Mappings"])
	if err != nil {
		return fmt.Errorf("error loading mappings: %w", err)
	}

	transactions, err := loader.LoadTransactions(files["Transactions"])
	if err != nil {
		return fmt.Errorf("error loading transactions: %w", err)
	}

	inventory, err := loader.LoadInventory(files["Inventory"])
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded:\n")
		fmt.Printf("  Recipes: %d\n", len(recipes))
		fmt.Printf("  Mappings: %d\n", len(mappings))
		fmt.Printf("  Transactions: %d\n", len(transactions))
		fmt.Printf("  Inventory items: %d\n", inventory.Len())
		fmt.Println()
	}

	recipeRepo := memory.NewRecipeRepository()
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		return fmt.Errorf("failed to load recipes into repository: %w", err)
	}

	mappingRepo := memory.NewMappingRepository()
	if err := mappingRepo.LoadMappings(mappings); err != nil {
		return fmt.Errorf("failed to load mappings into repository: %w", err)
	}

	eventStore := events.NewInMemoryEventStore()

	processor := batch.NewProcessor(deduction.NewEngine(), recipeRepo, mappingRepo, batch.Options{
		Logger:     logger,
		EventStore: eventStore,
	})

	txValues := make([]entities.POSTransaction, len(transactions))
	for i, tx := range transactions {
		txValues[i] = *tx
	}

	startTime := time.Now()
	result, err := processor.ProcessBatch(txValues, inventory)
	if err != nil {
		return fmt.Errorf("error processing batch: %w", err)
	}
	processingTime := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("Batch %s completed in %v\n\n", result.RunID, processingTime)
	}

	analyticsService := analytics.NewServiceWithOptions(analytics.Options{
		OutlierSigma: appConfig.OutlierSigma,
		ConfidenceZ:  appConfig.ConfidenceZ,
		TopVariants:  appConfig.TopVariants,
	})

	report, err := analyticsService.CalculatePeriodConsumption(analytics.PeriodContext{
		PeriodID:     c.config.PeriodID,
		Location:     appConfig.Location,
		Transactions: txValues,
		Mappings:     mappingRepo,
		Recipes:      recipeRepo,
	})
	if err != nil {
		return fmt.Errorf("error calculating period consumption: %w", err)
	}

	var stockMetrics *entities.RealTimeConsumptionMetrics
	if c.config.Metrics {
		projector := metrics.NewProjector(metrics.Options{
			DefaultDailyConsumption: appConfig.DailyConsumption(),
			EventStore:              eventStore,
		})
		stockMetrics = projector.Project(appConfig.Location, result.FinalInventory, time.Now())
	}

	outputConfig := output.Config{
		Format:         c.config.Format,
		OutputDir:      c.config.OutputDir,
		Verbose:        c.config.Verbose,
		ProcessingTime: processingTime,
	}

	if err := output.Generate(result, report, stockMetrics, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	logger.Info("run complete",
		zap.String("run_id", result.RunID),
		zap.Int("transactions", result.Summary.TransactionCount),
		zap.Int("failed", result.Summary.FailedCount),
		zap.String("total_cost", result.Summary.TotalCost.String()))

	return nil
}

// validateInputs validates the command configuration
func (c *RunCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.RecipesFile == "" || c.config.MappingsFile == "" ||
			c.config.TransactionsFile == "" || c.config.InventoryFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual data files")
	}
	return nil
}

// resolveAppConfig loads the application config file when one is given and
// falls back to defaults otherwise. Flag values fill the fields the file
// does not own.
func (c *RunCommand) resolveAppConfig() (*config.Config, error) {
	if c.config.ConfigFile != "" {
		cfg, err := config.Load(c.config.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	return &config.Config{
		Location:                c.config.Location,
		LogLevel:                "INFO",
		LogFormat:               "console",
		OutlierSigma:            2,
		ConfidenceZ:             1.96,
		TopVariants:             5,
		DefaultDailyConsumption: decimal.Zero.String(),
	}, nil
}

// resolveInputFiles determines the actual file paths to use
func (c *RunCommand) resolveInputFiles() (map[string]string, error) {
	var recipesPath, mappingsPath, transactionsPath, inventoryPath string

	if c.config.ScenarioDir != "" {
		recipesPath = filepath.Join(c.config.ScenarioDir, "recipes.json")
		mappingsPath = filepath.Join(c.config.ScenarioDir, "mappings.json")
		transactionsPath = filepath.Join(c.config.ScenarioDir, "transactions.csv")
		inventoryPath = filepath.Join(c.config.ScenarioDir, "inventory.csv")
	} else {
		recipesPath = c.config.RecipesFile
		mappingsPath = c.config.MappingsFile
		transactionsPath = c.config.TransactionsFile
		inventoryPath = c.config.InventoryFile
	}

	files := map[string]string{
		"Recipes":      recipesPath,
		"Mappings":     mappingsPath,
		"Transactions": transactionsPath,
		"Inventory":    inventoryPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *RunCommand) printHeader(files map[string]string) {
	fmt.Printf("Fractional Inventory Engine\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Recipes: %s\n", files["Recipes"])
	fmt.Printf("  Mappings: %s\n", files["Mappings"])
	fmt.Printf("  Transactions: %s\n", files["Transactions"])
	fmt.Printf("  Inventory: %s\n", files["Inventory"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *RunCommand) showHelp() {
	fmt.Printf(`Fractional Inventory Engine - POS consumption and variance analytics

USAGE:
    fic -scenario <directory>                  # Use scenario directory
    fic -recipes <file> -mappings <file> ...   # Use individual data files

OPTIONS:
    -scenario <dir>       Path to scenario directory
    -recipes <file>       Path to recipes JSON file
    -mappings <file>      Path to POS mappings JSON file
    -transactions <file>  Path to transactions CSV file
    -inventory <file>     Path to inventory CSV file
    -config <file>        Path to application config JSON file (optional)
    -period <id>          Reporting period identifier (default: current date)
    -location <name>      Location name when no config file is given
    -output <dir>         Output directory for results (optional)
    -format <fmt>         Output format: text, json (default: text)
    -metrics              Project stock status metrics after the run
    -verbose              Enable verbose output
    -help                 Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── recipes.json        # Recipe catalog with yield variants
    ├── mappings.json       # POS item to recipe mappings
    ├── transactions.csv    # POS sales transactions
    └── inventory.csv       # Opening stock levels

DATA FILE FORMATS:

transactions.csv:
    id,pos_item_code,quantity_sold,sale_price,timestamp,location,cashier
    TX1,POS-PIZZA-SLICE,2,3.50,2024-03-15T12:30:00Z,DOWNTOWN,alice

inventory.csv:
    ingredient_id,quantity,unit_cost,critical_level,reorder_point,daily_consumption
    CHEESE,5000,0.01,500,1000,250

EXAMPLES:
    # Run a scenario with verbose output
    fic -scenario examples/pizzeria -verbose

    # Run with stock metrics and JSON output
    fic -scenario examples/pizzeria -metrics -format json -output results/

    # Run with individual files and a config file
    fic -recipes data/recipes.json -mappings data/mappings.json \
        -transactions data/sales.csv -inventory data/stock.csv -config config.json
`)
}
