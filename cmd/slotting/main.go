package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/slotting/pkg/infrastructure/auth"
	"github.com/vsinha/slotting/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Directory containing inventory, sales and optional product_master files",
		)
		inventoryFile = flag.String("inventory", "", "Path to inventory CSV or XLSX file")
		salesFile     = flag.String("sales", "", "Path to sales CSV or XLSX file")
		masterFile    = flag.String("master", "", "Path to product master CSV or XLSX file (optional)")
		sheetName     = flag.String("sheet", "", "Worksheet to read from XLSX inputs (default: first sheet)")
		encoding      = flag.String("encoding", "utf-8", "CSV encoding: utf-8 or euc-kr")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, tsv, json, csv, xlsx, html")
		category      = flag.String("category", "", "Comma separated categories to render (default: all)")
		channel       = flag.String("channel", "", "Sales channel filter (substring match)")
		zonePrefix    = flag.String("zone", "", "Pickable storage zone prefix")
		password      = flag.String("password", "", "Password for protected installations")
		hashPassword  = flag.Bool("hash-password", false, "Print a bcrypt hash for -password and exit")
		databaseURL   = flag.String("database-url", "", "PostgreSQL URL for product masters")
		metricsFile   = flag.String("metrics-file", "", "Write Prometheus metrics to this textfile")
		envFile       = flag.String("env-file", "", "Load settings from this file instead of ./.env")
		workers       = flag.Int("workers", 1, "Number of goroutines aggregating inventory")
		logLevel      = flag.String("log-level", "", "Log level: debug, info, warn, error")
		logFormat     = flag.String("log-format", "", "Log format: console or json")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		InventoryFile: *inventoryFile,
		SalesFile:     *salesFile,
		MasterFile:    *masterFile,
		SheetName:     *sheetName,
		Encoding:      *encoding,
		OutputDir:     *outputDir,
		Format:        *format,
		Category:      *category,
		Channel:       *channel,
		ZonePrefix:    *zonePrefix,
		Password:      *password,
		HashPassword:  *hashPassword,
		DatabaseURL:   *databaseURL,
		MetricsFile:   *metricsFile,
		EnvFile:       *envFile,
		Workers:       *workers,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
		Verbose:       *verbose,
		Help:          *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and execute command
	cmd := commands.NewSlottingCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, auth.ErrAccessDenied) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
