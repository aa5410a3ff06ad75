// Package postgres reads product master data from a PostgreSQL database.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
	"github.com/vsinha/slotting/pkg/domain/repositories"
)

// DefaultTable is the product master table queried when none is configured
const DefaultTable = "product_master"

// NewPool opens and pings a connection pool for connStr
func NewPool(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	if connStr == "" {
		return nil, fmt.Errorf("database URL not set")
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// ProductMasterRepository reads product masters from a table with the columns
// product_code, box_weight, each_per_box and each_weight
type ProductMasterRepository struct {
	pool  *pgxpool.Pool
	table string
}

// Verify interface compliance
var _ repositories.ProductMasterRepository = (*ProductMasterRepository)(nil)

// NewProductMasterRepository creates a repository over pool using DefaultTable
func NewProductMasterRepository(pool *pgxpool.Pool) *ProductMasterRepository {
	return &ProductMasterRepository{pool: pool, table: DefaultTable}
}

// NewProductMasterRepositoryWithTable creates a repository reading from table
func NewProductMasterRepositoryWithTable(pool *pgxpool.Pool, table string) *ProductMasterRepository {
	return &ProductMasterRepository{pool: pool, table: table}
}

func (r *ProductMasterRepository) selectSQL() string {
	return fmt.Sprintf(
		`SELECT product_code, box_weight::text, COALESCE(each_per_box, 0), COALESCE(each_weight, 0)::text FROM %s`,
		pgx.Identifier{r.table}.Sanitize(),
	)
}

// GetProductMaster returns the master for one product
func (r *ProductMasterRepository) GetProductMaster(ctx context.Context, code entities.ProductCode) (*entities.ProductMaster, error) {
	row := r.pool.QueryRow(ctx, r.selectSQL()+` WHERE product_code = $1`, string(code))

	master, err := scanMaster(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrProductMasterNotFound, code)
		}
		return nil, fmt.Errorf("failed to query product master %s: %w", code, err)
	}
	return master, nil
}

// GetProductMasters returns the masters found for codes in a single query
func (r *ProductMasterRepository) GetProductMasters(ctx context.Context, codes []entities.ProductCode) (map[entities.ProductCode]*entities.ProductMaster, error) {
	result := make(map[entities.ProductCode]*entities.ProductMaster, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = string(code)
	}

	rows, err := r.pool.Query(ctx, r.selectSQL()+` WHERE product_code = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to query product masters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		master, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product master: %w", err)
		}
		result[master.ProductCode] = master
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product masters: %w", err)
	}
	return result, nil
}

func scanMaster(row pgx.Row) (*entities.ProductMaster, error) {
	var (
		code       string
		boxWeight  string
		eachPerBox int64
		eachWeight string
	)
	if err := row.Scan(&code, &boxWeight, &eachPerBox, &eachWeight); err != nil {
		return nil, err
	}

	weight, err := decimal.NewFromString(boxWeight)
	if err != nil {
		return nil, fmt.Errorf("product %s: invalid box weight %q: %w", code, boxWeight, err)
	}
	unitWeight, err := decimal.NewFromString(eachWeight)
	if err != nil {
		return nil, fmt.Errorf("product %s: invalid each weight %q: %w", code, eachWeight, err)
	}

	return &entities.ProductMaster{
		ProductCode: entities.NormalizeProductCode(code),
		BoxWeight:   weight,
		EachPerBox:  eachPerBox,
		EachWeight:  unitWeight,
	}, nil
}
