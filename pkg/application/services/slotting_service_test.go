package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/slotting/pkg/application/services/slotting"
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/infrastructure/repositories/memory"
)

func buildRepositories(t *testing.T) (*memory.InventoryRepository, *memory.SalesRepository) {
	t.Helper()

	inventoryRepo := memory.NewInventoryRepository(8)
	require.NoError(t, inventoryRepo.LoadInventoryRecords([]*entities.InventoryRecord{
		{ProductCode: "P1", ProductName: "Detergent", LocationRaw: "CC-01-02-01", Quantity: decimal.NewFromInt(10)},
		{ProductCode: "P1", ProductName: "Detergent", LocationRaw: "CC-01-05-03", Quantity: decimal.NewFromInt(5)},
		{ProductCode: "P2", ProductName: "Tissue", LocationRaw: "CC-02-06-02", Quantity: decimal.NewFromInt(40)},
		{ProductCode: "P3", ProductName: "Soap", LocationRaw: "CC-03-01-11", Quantity: decimal.NewFromInt(25)},
		{ProductCode: "P4", ProductName: "Reserve", LocationRaw: "RS-01-01-01", Quantity: decimal.NewFromInt(99)},
		{ProductCode: "", ProductName: "Orphan", LocationRaw: "CC-01-01-01", Quantity: decimal.NewFromInt(1)},
	}))

	salesRepo := memory.NewSalesRepository(4)
	require.NoError(t, salesRepo.LoadSalesRecords([]*entities.SalesRecord{
		{ProductCode: "P1", Channel: "B2C", DeliveredQuantity: decimal.NewFromInt(600)},
		{ProductCode: "P2", Channel: "B2C", DeliveredQuantity: decimal.NewFromInt(100)},
		{ProductCode: "P2", Channel: "B2C", DeliveredQuantity: decimal.NewFromInt(750)},
		{ProductCode: "P3", Channel: "B2B", DeliveredQuantity: decimal.NewFromInt(300)},
	}))

	return inventoryRepo, salesRepo
}

func TestSlottingService_Run(t *testing.T) {
	inventoryRepo, salesRepo := buildRepositories(t)
	service := NewSlottingService(zap.NewNop())

	report, err := service.Run(context.Background(), inventoryRepo, salesRepo, nil)
	require.NoError(t, err)

	require.Len(t, report.MoveToFront, 1)
	assert.Equal(t, entities.ProductCode("P2"), report.MoveToFront[0].ProductCode)
	assert.True(t, report.MoveToFront[0].SalesQuantity.Equal(decimal.NewFromInt(750)))

	require.Len(t, report.MoveFromFront, 1)
	assert.Equal(t, entities.ProductCode("P3"), report.MoveFromFront[0].ProductCode)

	require.Len(t, report.ZeroDemandEasyAccess, 1)
	assert.Equal(t, entities.ProductCode("P3"), report.ZeroDemandEasyAccess[0].ProductCode)

	require.Len(t, report.FullRanking, 3)
	assert.Equal(t, entities.ProductCode("P2"), report.FullRanking[0].ProductCode)
	assert.Equal(t, entities.ProductCode("P1"), report.FullRanking[1].ProductCode)

	assert.NotEmpty(t, report.Metadata.RunID)
	assert.Equal(t, "B2C", report.Metadata.ChannelFilter)
	assert.Equal(t, 6, report.Diagnostics.InventoryRows)
	assert.Equal(t, 1, report.Diagnostics.InventoryDropped[entities.DefectZoneMismatch])
	assert.Equal(t, 1, report.Diagnostics.InventoryDropped[entities.DefectMissingProductCode])
	assert.Equal(t, 1, report.Diagnostics.SalesDropped[entities.DefectChannelMismatch])
	assert.Equal(t, 3, report.Diagnostics.Products)
	assert.Equal(t, 2, report.Diagnostics.DemandProducts)
}

func TestSlottingService_ProductMasterEnrichment(t *testing.T) {
	inventoryRepo, salesRepo := buildRepositories(t)
	masterRepo := memory.NewProductMasterRepository(1)
	require.NoError(t, masterRepo.SaveProductMaster(&entities.ProductMaster{
		ProductCode: "P2", BoxWeight: decimal.NewFromInt(9), EachPerBox: 12,
	}))

	report, err := NewSlottingService(nil).Run(context.Background(), inventoryRepo, salesRepo, masterRepo)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Diagnostics.MasterEnriched)
	require.True(t, report.MoveToFront[0].BoxesOnHand.Valid)
	assert.True(t, report.MoveToFront[0].BoxesOnHand.Decimal.Equal(decimal.NewFromInt(4)))
	assert.True(t, report.FullRanking[0].BoxWeight.Valid)
	assert.False(t, report.FullRanking[1].BoxWeight.Valid)
}

type failingMasterRepository struct {
	*memory.ProductMasterRepository
}

func (failingMasterRepository) GetProductMasters(context.Context, []entities.ProductCode) (map[entities.ProductCode]*entities.ProductMaster, error) {
	return nil, errors.New("connection refused")
}

func TestSlottingService_MasterFailureIsNotFatal(t *testing.T) {
	inventoryRepo, salesRepo := buildRepositories(t)
	core, logs := observer.New(zapcore.WarnLevel)

	service := NewSlottingService(zap.New(core))
	report, err := service.Run(context.Background(), inventoryRepo, salesRepo, failingMasterRepository{memory.NewProductMasterRepository(0)})
	require.NoError(t, err)

	assert.Len(t, report.FullRanking, 3)
	assert.Zero(t, report.Diagnostics.MasterEnriched)
	assert.Equal(t, 1, logs.FilterMessageSnippet("product master look-up failed").Len())
}

type failingInventoryRepository struct {
	*memory.InventoryRepository
}

func (failingInventoryRepository) GetInventoryRecords() ([]*entities.InventoryRecord, error) {
	return nil, errors.New("workbook is corrupt")
}

func TestSlottingService_StructuralErrorAborts(t *testing.T) {
	_, salesRepo := buildRepositories(t)

	report, err := NewSlottingService(zap.NewNop()).Run(context.Background(), failingInventoryRepository{memory.NewInventoryRepository(0)}, salesRepo, nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to read inventory")
}

func TestNewSlottingServiceWithConfig_RejectsInvalidConfig(t *testing.T) {
	engine := slotting.DefaultConfig()
	engine.ZeroDemandSummaryLimit = -1

	_, err := NewSlottingServiceWithConfig(ServiceConfig{Engine: engine}, nil)
	assert.Error(t, err)
}

func TestSlottingService_CustomChannel(t *testing.T) {
	inventoryRepo, salesRepo := buildRepositories(t)
	engine := slotting.DefaultConfig()
	engine.ChannelFilter = "B2B"

	service, err := NewSlottingServiceWithConfig(ServiceConfig{Engine: engine, Workers: 4}, zap.NewNop())
	require.NoError(t, err)

	report, err := service.Run(context.Background(), inventoryRepo, salesRepo, nil)
	require.NoError(t, err)

	assert.Empty(t, report.MoveToFront)
	assert.Equal(t, entities.ProductCode("P3"), report.FullRanking[0].ProductCode)
	assert.Equal(t, 3, report.Diagnostics.SalesDropped[entities.DefectChannelMismatch])
}
