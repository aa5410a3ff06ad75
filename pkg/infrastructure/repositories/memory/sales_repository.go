package memory

import (
	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
)

// SalesRepository provides in-memory sales storage in load order
type SalesRepository struct {
	records []entities.SalesRecord
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository(expectedRows int) *SalesRepository {
	return &SalesRepository{
		records: make([]entities.SalesRecord, 0, expectedRows),
	}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// LoadSalesRecords appends records to the repository; nil entries are skipped
func (r *SalesRepository) LoadSalesRecords(records []*entities.SalesRecord) error {
	for _, record := range records {
		if record == nil {
			continue
		}
		r.records = append(r.records, *record)
	}
	return nil
}

// GetSalesRecords returns all rows in load order
func (r *SalesRepository) GetSalesRecords() ([]*entities.SalesRecord, error) {
	records := make([]*entities.SalesRecord, len(r.records))
	for i := range r.records {
		records[i] = &r.records[i]
	}
	return records, nil
}

// Count returns the number of stored rows
func (r *SalesRepository) Count() int {
	return len(r.records)
}
