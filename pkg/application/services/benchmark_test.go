package services

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/vsinha/slotting/pkg/application/services/slotting"
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/slotting/pkg/infrastructure/testing"
)

func TestSlottingService_SimpleScenario(t *testing.T) {
	inventoryRepo, salesRepo := testhelpers.BuildSimpleTestData()
	service := NewSlottingService(zap.NewNop())

	report, err := service.Run(context.Background(), inventoryRepo, salesRepo, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// P1 sells 600 but its nearest column is 2, which is not beyond 3
	if len(report.MoveToFront) != 0 {
		t.Errorf("expected no move-to-front products, got %d", len(report.MoveToFront))
	}
	if len(report.FullRanking) != 2 || report.FullRanking[0].ProductCode != "P1" {
		t.Fatalf("expected P1 to lead the full ranking, got %+v", report.FullRanking)
	}
	if report.FullRanking[0].MinColumn != 2 || report.FullRanking[0].TotalQuantity.IntPart() != 15 {
		t.Errorf("unexpected P1 aggregate: %+v", report.FullRanking[0])
	}

	// P2 only ships through B2B so it has no B2C demand on a front easy-access slot
	if len(report.MoveFromFront) != 1 || report.MoveFromFront[0].ProductCode != "P2" {
		t.Errorf("expected P2 in move-from-front, got %+v", report.MoveFromFront)
	}
	if len(report.ZeroDemandEasyAccess) != 1 || report.ZeroDemandEasyAccess[0].ProductCode != "P2" {
		t.Errorf("expected P2 in zero-demand easy access, got %+v", report.ZeroDemandEasyAccess)
	}
}

func TestSlottingService_ParallelMatchesSequential(t *testing.T) {
	inventory, sales := testhelpers.BuildWarehouseTestData(testhelpers.WarehouseSpec{
		Products:            500,
		LocationsPerProduct: 12,
		OutOfZoneRatio:      0.2,
		SalesRowsPerProduct: 2,
		Seed:                7,
	})
	inventoryRepo, salesRepo := loadRepositories(t, inventory, sales)

	run := func(workers int) []entities.ProductCode {
		service, err := NewSlottingServiceWithConfig(ServiceConfig{Engine: slotting.DefaultConfig(), Workers: workers}, zap.NewNop())
		if err != nil {
			t.Fatalf("NewSlottingServiceWithConfig failed: %v", err)
		}
		report, err := service.Run(context.Background(), inventoryRepo, salesRepo, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		codes := make([]entities.ProductCode, len(report.FullRanking))
		for i, r := range report.FullRanking {
			codes[i] = r.ProductCode
		}
		return codes
	}

	sequential := run(1)
	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel := run(workers)
			if len(parallel) != len(sequential) {
				t.Fatalf("expected %d products, got %d", len(sequential), len(parallel))
			}
			for i := range sequential {
				if parallel[i] != sequential[i] {
					t.Fatalf("rank %d: expected %s, got %s", i+1, sequential[i], parallel[i])
				}
			}
		})
	}
}

func loadRepositories(tb testing.TB, inventory []*entities.InventoryRecord, sales []*entities.SalesRecord) (*memory.InventoryRepository, *memory.SalesRepository) {
	tb.Helper()
	inventoryRepo := memory.NewInventoryRepository(len(inventory))
	if err := inventoryRepo.LoadInventoryRecords(inventory); err != nil {
		tb.Fatalf("LoadInventoryRecords failed: %v", err)
	}
	salesRepo := memory.NewSalesRepository(len(sales))
	if err := salesRepo.LoadSalesRecords(sales); err != nil {
		tb.Fatalf("LoadSalesRecords failed: %v", err)
	}
	return inventoryRepo, salesRepo
}

func benchmarkRun(b *testing.B, products, workers int) {
	ctx := context.Background()
	inventory, sales := testhelpers.BuildWarehouseTestData(testhelpers.WarehouseSpec{
		Products:            products,
		LocationsPerProduct: 8,
		OutOfZoneRatio:      0.1,
		SalesRowsPerProduct: 3,
		Seed:                42,
	})
	inventoryRepo, salesRepo := loadRepositories(b, inventory, sales)

	service, err := NewSlottingServiceWithConfig(ServiceConfig{Engine: slotting.DefaultConfig(), Workers: workers}, zap.NewNop())
	if err != nil {
		b.Fatalf("NewSlottingServiceWithConfig failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Run(ctx, inventoryRepo, salesRepo, nil); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkSlottingService_Small(b *testing.B) {
	benchmarkRun(b, 1000, 1)
}

func BenchmarkSlottingService_Large(b *testing.B) {
	benchmarkRun(b, 50000, 1)
}

func BenchmarkSlottingService_LargeParallel(b *testing.B) {
	benchmarkRun(b, 50000, 8)
}
