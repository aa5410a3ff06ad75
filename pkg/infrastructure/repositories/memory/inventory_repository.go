package memory

import (
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory storage in load order
type InventoryRepository struct {
	records []entities.InventoryRecord
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository(expectedRows int) *InventoryRepository {
	return &InventoryRepository{
		records: make([]entities.InventoryRecord, 0, expectedRows),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadInventoryRecords appends records to the repository; nil entries are skipped
func (r *InventoryRepository) LoadInventoryRecords(records []*entities.InventoryRecord) error {
	for _, record := range records {
		if record == nil {
			continue
		}
		r.AddInventoryRecord(*record)
	}
	return nil
}

// AddInventoryRecord adds a single row
func (r *InventoryRepository) AddInventoryRecord(record entities.InventoryRecord) {
	r.records = append(r.records, record)
}

// GetInventoryRecords returns all rows in load order
func (r *InventoryRepository) GetInventoryRecords() ([]*entities.InventoryRecord, error) {
	records := make([]*entities.InventoryRecord, len(r.records))
	for i := range r.records {
		records[i] = &r.records[i]
	}
	return records, nil
}

// Count returns the number of stored rows
func (r *InventoryRepository) Count() int {
	return len(r.records)
}
