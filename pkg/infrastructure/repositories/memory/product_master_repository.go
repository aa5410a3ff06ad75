package memory

import (
	"context"
	"fmt"

	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
)

// ProductMasterRepository provides in-memory product master storage
type ProductMasterRepository struct {
	masters    []entities.ProductMaster
	mastersMap map[entities.ProductCode]int
}

// NewProductMasterRepository creates a new in-memory product master repository
func NewProductMasterRepository(expectedProducts int) *ProductMasterRepository {
	return &ProductMasterRepository{
		masters:    make([]entities.ProductMaster, 0, expectedProducts),
		mastersMap: make(map[entities.ProductCode]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductMasterRepository = (*ProductMasterRepository)(nil)

// LoadProductMasters loads master entries; a later entry for the same code replaces the earlier one
func (r *ProductMasterRepository) LoadProductMasters(masters []*entities.ProductMaster) error {
	for _, master := range masters {
		if master == nil {
			continue
		}
		if err := r.SaveProductMaster(master); err != nil {
			return err
		}
	}
	return nil
}

// SaveProductMaster stores or replaces one master entry
func (r *ProductMasterRepository) SaveProductMaster(master *entities.ProductMaster) error {
	if master.ProductCode == "" {
		return fmt.Errorf("product code cannot be empty")
	}
	if index, exists := r.mastersMap[master.ProductCode]; exists {
		r.masters[index] = *master
		return nil
	}
	r.mastersMap[master.ProductCode] = len(r.masters)
	r.masters = append(r.masters, *master)
	return nil
}

// GetProductMaster returns the master entry for a product code
func (r *ProductMasterRepository) GetProductMaster(_ context.Context, code entities.ProductCode) (*entities.ProductMaster, error) {
	index, exists := r.mastersMap[code]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrProductMasterNotFound, code)
	}
	master := r.masters[index]
	return &master, nil
}

// GetProductMasters returns the entries found for codes
func (r *ProductMasterRepository) GetProductMasters(ctx context.Context, codes []entities.ProductCode) (map[entities.ProductCode]*entities.ProductMaster, error) {
	found := make(map[entities.ProductCode]*entities.ProductMaster, len(codes))
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if master, err := r.GetProductMaster(ctx, code); err == nil {
			found[code] = master
		}
	}
	return found, nil
}

// Count returns the number of stored entries
func (r *ProductMasterRepository) Count() int {
	return len(r.masters)
}
