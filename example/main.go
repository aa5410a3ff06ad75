package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/slotting/pkg/application/services"
	"github.com/vsinha/slotting/pkg/application/services/slotting"
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/slotting/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	// Create repositories
	inventoryRepo := memory.NewInventoryRepository(16)
	salesRepo := memory.NewSalesRepository(8)
	masterRepo := memory.NewProductMasterRepository(4)

	setupWarehouse(inventoryRepo, salesRepo, masterRepo)

	// Lower the move-to-front bar for a small site
	engine := slotting.DefaultConfig()
	engine.MoveToFrontMinSales = 300

	service, err := services.NewSlottingServiceWithConfig(services.ServiceConfig{Engine: engine, Workers: 1}, zap.NewNop())
	if err != nil {
		fmt.Printf("❌ invalid configuration: %v\n", err)
		return
	}

	fmt.Println("🚀 Running slotting classification...")
	report, err := service.Run(ctx, inventoryRepo, salesRepo, masterRepo)
	if err != nil {
		fmt.Printf("❌ Slotting failed: %v\n", err)
		return
	}

	if err := output.Generate(report, output.Config{Format: "text", Verbose: true}); err != nil {
		fmt.Printf("❌ Output failed: %v\n", err)
	}
}

func setupWarehouse(
	inventoryRepo *memory.InventoryRepository,
	salesRepo *memory.SalesRepository,
	masterRepo *memory.ProductMasterRepository,
) {
	stock := []struct {
		code, name, location string
		qty                  int64
	}{
		{"880100", "Laundry detergent 3L", "CC-01-06-02", 48},
		{"880100", "Laundry detergent 3L", "CC-04-09-03", 96},
		{"880200", "Paper towel 12 rolls", "CC-02-01-01", 30},
		{"880200", "Paper towel 12 rolls", "CC-02-01-11", 30},
		{"880300", "Dish soap 500ml", "CC-03-02-01", 120},
		{"880400", "Sponge 3 pack", "CC-01-01-12", 200},
		{"880400", "Sponge 3 pack", "RS-09-01-01", 1000}, // reserve storage, not pickable
	}
	for _, s := range stock {
		inventoryRepo.AddInventoryRecord(entities.InventoryRecord{
			ProductCode: entities.ProductCode(s.code),
			ProductName: s.name,
			LocationRaw: s.location,
			Quantity:    decimal.NewFromInt(s.qty),
		})
	}

	sales := []*entities.SalesRecord{
		{ProductCode: "880100", Channel: "B2C-MALL", DeliveredQuantity: decimal.NewFromInt(820)},
		{ProductCode: "880200", Channel: "B2C-APP", DeliveredQuantity: decimal.NewFromInt(35)},
		{ProductCode: "880300", Channel: "B2C-APP", DeliveredQuantity: decimal.NewFromInt(410)},
		{ProductCode: "880400", Channel: "B2B", DeliveredQuantity: decimal.NewFromInt(5000)},
	}
	if err := salesRepo.LoadSalesRecords(sales); err != nil {
		panic(err)
	}

	masters := []*entities.ProductMaster{
		{ProductCode: "880100", BoxWeight: decimal.RequireFromString("14.2"), EachPerBox: 4},
		{ProductCode: "880200", BoxWeight: decimal.RequireFromString("3.6"), EachPerBox: 6},
	}
	if err := masterRepo.LoadProductMasters(masters); err != nil {
		panic(err)
	}
}
