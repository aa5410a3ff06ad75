package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/slotting/pkg/application/services"
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
	"github.com/vsinha/slotting/pkg/infrastructure/auth"
	"github.com/vsinha/slotting/pkg/infrastructure/config"
	"github.com/vsinha/slotting/pkg/infrastructure/logging"
	"github.com/vsinha/slotting/pkg/infrastructure/metrics"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/postgres"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/slotting/pkg/interfaces/cli/output"
)

// Config holds configuration for the slotting command. Empty values fall back to the environment.
type Config struct {
	ScenarioDir   string
	InventoryFile string
	SalesFile     string
	MasterFile    string
	SheetName     string
	Encoding      string
	OutputDir     string
	Format        string
	Category      string
	Channel       string
	ZonePrefix    string
	Password      string
	HashPassword  bool
	MetricsFile   string
	EnvFile       string
	DatabaseURL   string
	LogLevel      string
	LogFormat     string
	Workers       int
	Verbose       bool
	Help          bool

	// Stdout receives reports and messages (os.Stdout when nil)
	Stdout io.Writer
}

// rowLoader reads domain rows from one file format
type rowLoader interface {
	LoadInventory(filename string) ([]*entities.InventoryRecord, error)
	LoadSales(filename string) ([]*entities.SalesRecord, error)
	LoadProductMasters(filename string) ([]*entities.ProductMaster, error)
}

// SlottingCommand handles the main slotting execution logic
type SlottingCommand struct {
	config Config
	out    io.Writer
}

// NewSlottingCommand creates a new slotting command with the given configuration
func NewSlottingCommand(config Config) *SlottingCommand {
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &SlottingCommand{
		config: config,
		out:    out,
	}
}

// Execute runs the slotting command
func (c *SlottingCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.HashPassword {
		return c.printPasswordHash()
	}

	settings, err := config.Load(c.config.EnvFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	c.applyOverrides(settings)

	logger, err := logging.New(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gate, err := auth.NewPasswordGate(settings.PasswordHash)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := gate.Check(settings.Password); err != nil {
		return err
	}

	// Validate inputs
	categories, err := c.validateInputs()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Determine input files
	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files, settings)
	}

	inventoryRepo, salesRepo, err := c.loadRows(files, logger)
	if err != nil {
		return err
	}

	masterRepo, closeMasters, err := c.openProductMasters(ctx, files, settings, logger)
	if err != nil {
		return err
	}
	defer closeMasters()

	service, err := services.NewSlottingServiceWithConfig(services.ServiceConfig{
		Engine:  settings.Engine,
		Workers: c.config.Workers,
	}, logger)
	if err != nil {
		return err
	}

	report, err := service.Run(ctx, inventoryRepo, salesRepo, masterRepo)
	if err != nil {
		return fmt.Errorf("error running slotting classification: %w", err)
	}
	report.Metadata.InputFiles = files

	logging.LogDataQuality(logger, "inventory", report.Diagnostics.InventoryDropped)
	logging.LogDataQuality(logger, "sales", report.Diagnostics.SalesDropped)

	if c.config.MetricsFile != "" {
		recorder := metrics.NewRecorder()
		recorder.RecordReport(report)
		if err := recorder.WriteTextfile(c.config.MetricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", zap.String("path", c.config.MetricsFile))
	}

	// Generate output
	outputConfig := output.Config{
		Format:     c.config.Format,
		OutputDir:  c.config.OutputDir,
		Categories: categories,
		Verbose:    c.config.Verbose,
		Writer:     c.out,
	}
	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Slotting analysis complete!")
	}
	return nil
}

// applyOverrides lets command line flags win over environment settings
func (c *SlottingCommand) applyOverrides(settings *config.Config) {
	if c.config.Channel != "" {
		settings.Engine.ChannelFilter = c.config.Channel
	}
	if c.config.ZonePrefix != "" {
		settings.Engine.ZonePrefix = c.config.ZonePrefix
	}
	if c.config.Password != "" {
		settings.Password = c.config.Password
	}
	if c.config.DatabaseURL != "" {
		settings.DatabaseURL = c.config.DatabaseURL
	}
	if c.config.LogLevel != "" {
		settings.LogLevel = c.config.LogLevel
	}
	if c.config.LogFormat != "" {
		settings.LogFormat = c.config.LogFormat
	}
}

func (c *SlottingCommand) printPasswordHash() error {
	if c.config.Password == "" {
		return fmt.Errorf("validation error: -password is required with -hash-password")
	}
	hash, err := auth.HashPassword(c.config.Password, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s=%s\n", config.EnvPasswordHash, hash)
	return nil
}

// validateInputs validates the command configuration and resolves the category selection
func (c *SlottingCommand) validateInputs() ([]entities.Category, error) {
	if c.config.ScenarioDir == "" && (c.config.InventoryFile == "" || c.config.SalesFile == "") {
		return nil, fmt.Errorf("must specify either -scenario directory or both -inventory and -sales files")
	}

	supported := false
	for _, format := range output.Formats {
		if c.config.Format == format {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("unsupported output format %q (expected one of %s)",
			c.config.Format, strings.Join(output.Formats, ", "))
	}

	if c.config.Workers < 0 {
		return nil, fmt.Errorf("workers cannot be negative, got %d", c.config.Workers)
	}

	return ParseCategories(c.config.Category)
}

// ParseCategories parses a comma separated category list. Names match the
// category enum (e.g. MoveToFront) or its file stem (e.g. move_to_front).
func ParseCategories(value string) ([]entities.Category, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var categories []entities.Category
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category, ok := entities.ParseCategory(name)
		if !ok {
			for _, candidate := range entities.Categories {
				if strings.EqualFold(output.FileStem(candidate), name) {
					category, ok = candidate, true
					break
				}
			}
		}
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// resolveInputFiles determines the actual file paths to use
func (c *SlottingCommand) resolveInputFiles() (map[string]string, error) {
	files := make(map[string]string)

	if c.config.ScenarioDir != "" {
		for _, input := range []struct{ name, stem string }{{"Inventory", "inventory"}, {"Sales", "sales"}} {
			name, stem := input.name, input.stem
			path, ok := findScenarioFile(c.config.ScenarioDir, stem)
			if !ok {
				return nil, fmt.Errorf("%s file not found in %s (expected %s.csv or %s.xlsx)",
					name, c.config.ScenarioDir, stem, stem)
			}
			files[name] = path
		}
		if path, ok := findScenarioFile(c.config.ScenarioDir, "product_master"); ok {
			files["Master"] = path
		}
	} else {
		files["Inventory"] = c.config.InventoryFile
		files["Sales"] = c.config.SalesFile
	}
	if c.config.MasterFile != "" {
		files["Master"] = c.config.MasterFile
	}

	// Validate files exist
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

func findScenarioFile(dir, stem string) (string, bool) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(dir, stem+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (c *SlottingCommand) loaderFor(filename string) (rowLoader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return xlsx.NewLoader(c.config.SheetName), nil
	case ".csv", ".txt", "":
		loader, err := csv.NewLoaderWithEncoding(c.config.Encoding)
		if err != nil {
			return nil, err
		}
		return loader, nil
	default:
		return nil, fmt.Errorf("unsupported input file type: %s", filename)
	}
}

func (c *SlottingCommand) loadRows(
	files map[string]string,
	logger *zap.Logger,
) (*memory.InventoryRepository, *memory.SalesRepository, error) {
	loader, err := c.loaderFor(files["Inventory"])
	if err != nil {
		return nil, nil, err
	}
	inventory, err := loader.LoadInventory(files["Inventory"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading inventory: %w", err)
	}

	loader, err = c.loaderFor(files["Sales"])
	if err != nil {
		return nil, nil, err
	}
	sales, err := loader.LoadSales(files["Sales"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading sales: %w", err)
	}

	logger.Info("input loaded",
		zap.Int("inventory_rows", len(inventory)),
		zap.Int("sales_rows", len(sales)))

	inventoryRepo := memory.NewInventoryRepository(len(inventory))
	if err := inventoryRepo.LoadInventoryRecords(inventory); err != nil {
		return nil, nil, fmt.Errorf("failed to load inventory into repository: %w", err)
	}
	salesRepo := memory.NewSalesRepository(len(sales))
	if err := salesRepo.LoadSalesRecords(sales); err != nil {
		return nil, nil, fmt.Errorf("failed to load sales into repository: %w", err)
	}
	return inventoryRepo, salesRepo, nil
}

// openProductMasters returns the configured master source, or nil when none is set.
// A master file takes precedence over the database.
func (c *SlottingCommand) openProductMasters(
	ctx context.Context,
	files map[string]string,
	settings *config.Config,
	logger *zap.Logger,
) (repositories.ProductMasterRepository, func(), error) {
	noop := func() {}

	if path, ok := files["Master"]; ok {
		loader, err := c.loaderFor(path)
		if err != nil {
			return nil, noop, err
		}
		masters, err := loader.LoadProductMasters(path)
		if err != nil {
			return nil, noop, fmt.Errorf("error loading product masters: %w", err)
		}
		repo := memory.NewProductMasterRepository(len(masters))
		if err := repo.LoadProductMasters(masters); err != nil {
			return nil, noop, fmt.Errorf("failed to load product masters into repository: %w", err)
		}
		logger.Info("product masters loaded", zap.String("source", path), zap.Int("products", repo.Count()))
		return repo, noop, nil
	}

	if settings.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, settings.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to product master database: %w", err)
		}
		logger.Info("product masters read from database")
		return postgres.NewProductMasterRepository(pool), pool.Close, nil
	}

	return nil, noop, nil
}

// printHeader prints the command header information
func (c *SlottingCommand) printHeader(files map[string]string, settings *config.Config) {
	fmt.Fprintf(c.out, "🚀 Slotting Classification CLI\n")
	fmt.Fprintf(c.out, "Input files:\n")
	fmt.Fprintf(c.out, "  Inventory: %s\n", files["Inventory"])
	fmt.Fprintf(c.out, "  Sales: %s\n", files["Sales"])
	if master, ok := files["Master"]; ok {
		fmt.Fprintf(c.out, "  Product master: %s\n", master)
	}
	fmt.Fprintf(c.out, "Channel: %s  Zone: %s  Easy-access levels: %v\n",
		settings.Engine.ChannelFilter, settings.Engine.ZonePrefix, settings.Engine.EasyAccessLevels)
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *SlottingCommand) showHelp() {
	fmt.Fprintf(c.out, `Slotting CLI - pick-face slotting recommendations from inventory and outbound history

USAGE:
    slotting -scenario <directory>                 # Use directory with inventory/sales files
    slotting -inventory <file> -sales <file> ...   # Use individual files

OPTIONS:
    -scenario <dir>       Directory containing inventory.(csv|xlsx), sales.(csv|xlsx)
                          and optionally product_master.(csv|xlsx)
    -inventory <file>     Inventory CSV or XLSX file
    -sales <file>         Sales (outbound) CSV or XLSX file
    -master <file>        Product master CSV or XLSX file (box weights)
    -sheet <name>         Worksheet to read from XLSX inputs (default: first sheet)
    -encoding <enc>       CSV encoding: utf-8 or euc-kr (default: utf-8)
    -output <dir>         Output directory for results (required for csv, xlsx)
    -format <fmt>         Output format: text, tsv, json, csv, xlsx, html (default: text)
    -category <list>      Categories to render, e.g. MoveToFront,full_ranking (default: all)
    -channel <tag>        Sales channel filter, substring match (env %s, default: B2C)
    -zone <prefix>        Pickable storage zone prefix (env %s, default: CC)
    -password <pw>        Password when %s is set (env %s)
    -hash-password        Print a bcrypt hash for -password and exit
    -database-url <url>   PostgreSQL URL for product masters (env %s)
    -metrics-file <file>  Write Prometheus metrics in textfile format
    -env-file <file>      Load settings from this file instead of ./.env
    -workers <n>          Aggregate inventory on n goroutines (default: 1)
    -log-level <level>    debug, info, warn, error (env %s, default: info)
    -log-format <fmt>     console or json (env %s, default: console)
    -verbose              Enable verbose output
    -help                 Show this help message

CATEGORIES:
    MoveToFront           outbound >= 500 and nearest column > 3
    MoveFromFront         outbound < 100 and nearest column <= 1
    ZeroDemandEasyAccess  no outbound but stock on easy-access levels (1, 11, 12)
    FullRanking           every product by outbound quantity
    Thresholds are set with %s, %s,
    %s and %s.

FILE FORMATS (header names, Korean headers are also accepted):

inventory:
    product_code,product_name,location,quantity
    P1001,Detergent 3L,CC-01-02-01,120

sales:
    product_code,channel,delivered_quantity
    P1001,B2C-APP,640

product_master:
    product_code,box_weight,each_per_box,each_weight
    P1001,12.5,4,3.1

EXAMPLES:
    slotting -scenario data/2026-10 -verbose
    slotting -inventory stock.xlsx -sales outbound.csv -encoding euc-kr -format xlsx -output out/
    slotting -scenario data/2026-10 -format tsv -category MoveToFront
`,
		config.EnvChannel, config.EnvZonePrefix, config.EnvPasswordHash, config.EnvPassword,
		config.EnvDatabaseURL, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvMoveToFrontMinSales, config.EnvMoveToFrontMinColumn,
		config.EnvMoveFromFrontMaxSales, config.EnvMoveFromFrontMaxCol)
}
