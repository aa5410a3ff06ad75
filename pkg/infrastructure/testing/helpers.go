package testing

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/memory"
)

// BuildSimpleTestData creates the two-product scenario: P1 stored at columns 2
// and 5 with 600 B2C outbound, P2 on an easy-access front slot with no outbound
func BuildSimpleTestData() (*memory.InventoryRepository, *memory.SalesRepository) {
	inventoryRepo := memory.NewInventoryRepository(3)
	salesRepo := memory.NewSalesRepository(2)

	inventory := []*entities.InventoryRecord{
		inventoryRow("P1", "Detergent 3L", "CC-01-02-01", 10),
		inventoryRow("P1", "Detergent 3L", "CC-01-05-03", 5),
		inventoryRow("P2", "Hand soap", "CC-02-01-01", 40),
	}
	if err := inventoryRepo.LoadInventoryRecords(inventory); err != nil {
		panic(err)
	}

	sales := []*entities.SalesRecord{
		salesRow("P1", "B2C", 600),
		salesRow("P2", "B2B", 900),
	}
	if err := salesRepo.LoadSalesRecords(sales); err != nil {
		panic(err)
	}

	return inventoryRepo, salesRepo
}

// WarehouseSpec sizes a generated warehouse
type WarehouseSpec struct {
	Products            int
	LocationsPerProduct int
	OutOfZoneRatio      float64 // share of rows outside the pickable zone
	SalesRowsPerProduct int
	Seed                int64
}

// BuildWarehouseTestData generates a deterministic warehouse of the given size
func BuildWarehouseTestData(spec WarehouseSpec) ([]*entities.InventoryRecord, []*entities.SalesRecord) {
	rng := rand.New(rand.NewSource(spec.Seed))
	levels := []int{1, 2, 3, 11, 12}
	channels := []string{"B2C", "B2C-APP", "B2B"}

	inventory := make([]*entities.InventoryRecord, 0, spec.Products*spec.LocationsPerProduct)
	for i := 0; i < spec.Products*spec.LocationsPerProduct; i++ {
		code := fmt.Sprintf("SKU%05d", rng.Intn(spec.Products))
		zone := "CC"
		if rng.Float64() < spec.OutOfZoneRatio {
			zone = "RS"
		}
		location := fmt.Sprintf("%s-%02d-%02d-%02d", zone, rng.Intn(30)+1, rng.Intn(20)+1, levels[rng.Intn(len(levels))])
		inventory = append(inventory, inventoryRow(code, "Product "+code, location, int64(rng.Intn(200))))
	}

	sales := make([]*entities.SalesRecord, 0, spec.Products*spec.SalesRowsPerProduct)
	for i := 0; i < spec.Products*spec.SalesRowsPerProduct; i++ {
		code := fmt.Sprintf("SKU%05d", rng.Intn(spec.Products))
		sales = append(sales, salesRow(code, channels[rng.Intn(len(channels))], int64(rng.Intn(1500))))
	}

	return inventory, sales
}

func inventoryRow(code, name, location string, quantity int64) *entities.InventoryRecord {
	return &entities.InventoryRecord{
		ProductCode: entities.ProductCode(code),
		ProductName: name,
		LocationRaw: location,
		Quantity:    decimal.NewFromInt(quantity),
	}
}

func salesRow(code, channel string, quantity int64) *entities.SalesRecord {
	return &entities.SalesRecord{
		ProductCode:       entities.ProductCode(code),
		Channel:           channel,
		DeliveredQuantity: decimal.NewFromInt(quantity),
	}
}
