package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/slotting/pkg/application/dto"
	"github.com/vsinha/slotting/pkg/application/services/slotting"
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
)

// ServiceConfig holds configuration for the slotting service
type ServiceConfig struct {
	Engine slotting.Config
	// Workers shards the inventory fold across goroutines (<= 1 = sequential)
	Workers int
}

// SlottingService runs the classification pipeline over repository data
type SlottingService struct {
	config     ServiceConfig
	logger     *zap.Logger
	aggregator *slotting.Aggregator
	classifier *slotting.Classifier
}

// NewSlottingService creates a slotting service with default thresholds
func NewSlottingService(logger *zap.Logger) *SlottingService {
	service, _ := NewSlottingServiceWithConfig(ServiceConfig{Engine: slotting.DefaultConfig(), Workers: 1}, logger)
	return service
}

// NewSlottingServiceWithConfig creates a slotting service with custom configuration
func NewSlottingServiceWithConfig(config ServiceConfig, logger *zap.Logger) (*SlottingService, error) {
	if err := config.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slotting configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlottingService{
		config:     config,
		logger:     logger,
		aggregator: slotting.NewAggregator(config.Engine),
		classifier: slotting.NewClassifier(config.Engine),
	}, nil
}

// Run loads inventory and sales rows, classifies every pickable product and
// returns the report. masterRepo is optional; when set, ranked records are
// enriched with box data and a failed look-up is logged, not returned.
func (s *SlottingService) Run(
	ctx context.Context,
	inventoryRepo repositories.InventoryRepository,
	salesRepo repositories.SalesRepository,
	masterRepo repositories.ProductMasterRepository,
) (*dto.SlottingReport, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	inventory, err := inventoryRepo.GetInventoryRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}
	sales, err := salesRepo.GetSalesRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales: %w", err)
	}

	set, err := s.aggregator.AggregateParallel(ctx, inventory, s.config.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory: %w", err)
	}
	index := slotting.BuildDemandIndex(sales, s.config.Engine.ChannelFilter)

	logger.Debug("inventory aggregated",
		zap.Int("rows", set.Rows),
		zap.Int("products", set.Len()),
		zap.Int("dropped", set.DroppedTotal()),
		zap.Int("demand_products", index.Len()))

	classification := s.classifier.Classify(s.classifier.Join(set, index))

	enriched := 0
	if masterRepo != nil {
		enriched = s.applyProductMasters(ctx, logger, classification, masterRepo)
	}

	report := &dto.SlottingReport{
		Metadata: dto.RunMetadata{
			RunID:         runID,
			GeneratedAt:   startTime,
			Elapsed:       time.Since(startTime),
			ChannelFilter: s.config.Engine.ChannelFilter,
			ZonePrefix:    s.config.Engine.ZonePrefix,
		},
		MoveToFront:          classification.MoveToFront,
		MoveFromFront:        classification.MoveFromFront,
		ZeroDemandEasyAccess: classification.ZeroDemandEasyAccess,
		FullRanking:          classification.FullRanking,
		Diagnostics: dto.Diagnostics{
			InventoryRows:    set.Rows,
			InventoryDropped: set.Dropped,
			SalesRows:        index.Rows,
			SalesDropped:     index.Dropped,
			Products:         set.Len(),
			DemandProducts:   index.Len(),
			MasterEnriched:   enriched,
		},
	}

	logger.Info("slotting classification completed",
		zap.Int("move_to_front", len(report.MoveToFront)),
		zap.Int("move_from_front", len(report.MoveFromFront)),
		zap.Int("zero_demand_easy_access", len(report.ZeroDemandEasyAccess)),
		zap.Int("products", len(report.FullRanking)),
		zap.Duration("elapsed", report.Metadata.Elapsed))

	return report, nil
}

func (s *SlottingService) applyProductMasters(
	ctx context.Context,
	logger *zap.Logger,
	classification *slotting.Classification,
	masterRepo repositories.ProductMasterRepository,
) int {
	masters, err := masterRepo.GetProductMasters(ctx, classification.ProductCodes())
	if err != nil {
		logger.Warn("product master look-up failed; box data omitted", zap.Error(err))
		return 0
	}
	for _, category := range entities.Categories {
		slotting.ApplyProductMasters(classification.Category(category), masters)
	}
	return len(masters)
}
