package repositories

import "github.com/vsinha/slotting/pkg/domain/entities"

// SalesRepository provides access to outbound shipment history
type SalesRepository interface {
	GetSalesRecords() ([]*entities.SalesRecord, error)
	LoadSalesRecords(records []*entities.SalesRecord) error
}
