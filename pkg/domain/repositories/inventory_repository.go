package repositories

import "github.com/vsinha/slotting/pkg/domain/entities"

// InventoryRepository provides access to on-hand stock rows
type InventoryRepository interface {
	GetInventoryRecords() ([]*entities.InventoryRecord, error)
	LoadInventoryRecords(records []*entities.InventoryRecord) error
}
