package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rkaliyev/fractional-inventory/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing data files",
		)
		recipesFile      = flag.String("recipes", "", "Path to recipes JSON file")
		mappingsFile     = flag.String("mappings", "", "Path to POS mappings JSON file")
		transactionsFile = flag.String("transactions", "", "Path to transactions CSV file")
		inventoryFile    = flag.String("inventory", "", "Path to inventory CSV file")
		configFile       = flag.String("config", "", "Path to application config JSON file (optional)")
		periodID         = flag.String("period", time.Now().Format("2006-01-02"), "Reporting period identifier")
		location         = flag.String("location", "MAIN", "Location name when no config file is given")
		outputDir        = flag.String("output", "", "Output directory for results (optional)")
		format           = flag.String("format", "text", "Output format: text, json")
		metrics          = flag.Bool("metrics", false, "Project stock status metrics after the run")
		verbose          = flag.Bool("verbose", false, "Enable verbose output")
		help             = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:      *scenarioDir,
		RecipesFile:      *recipesFile,
		MappingsFile:     *mappingsFile,
		TransactionsFile: *transactionsFile,
		InventoryFile:    *inventoryFile,
		ConfigFile:       *configFile,
		PeriodID:         *periodID,
		Location:         *location,
		OutputDir:        *outputDir,
		Format:           *format,
		Metrics:          *metrics,
		Verbose:          *verbose,
		Help:             *help,
	}

	// Create and execute command
	cmd := commands.NewRunCommand(config)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
