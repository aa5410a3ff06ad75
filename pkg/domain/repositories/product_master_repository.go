package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// ErrProductMasterNotFound is returned when a product has no master entry
var ErrProductMasterNotFound = errors.New("product master not found")

// ProductMasterRepository looks up packaging data by product code
type ProductMasterRepository interface {
	GetProductMaster(ctx context.Context, code entities.ProductCode) (*entities.ProductMaster, error)
	// GetProductMasters returns the entries found; codes without an entry are absent from the map
	GetProductMasters(ctx context.Context, codes []entities.ProductCode) (map[entities.ProductCode]*entities.ProductMaster, error)
}
