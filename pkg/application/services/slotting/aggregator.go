package slotting

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// minShardRows keeps tiny inputs on the sequential path
const minShardRows = 2048

// AggregateSet is the arena of product aggregates built by one fold, in first-appearance order
type AggregateSet struct {
	items   []entities.ProductAggregate
	index   map[entities.ProductCode]int
	Rows    int
	Dropped map[string]int
}

func newAggregateSet(expected int) *AggregateSet {
	return &AggregateSet{
		items:   make([]entities.ProductAggregate, 0, expected),
		index:   make(map[entities.ProductCode]int, expected),
		Dropped: make(map[string]int),
	}
}

// Len returns the number of products
func (s *AggregateSet) Len() int {
	return len(s.items)
}

// Get returns the aggregate for a product code
func (s *AggregateSet) Get(code entities.ProductCode) (entities.ProductAggregate, bool) {
	i, ok := s.index[code]
	if !ok {
		return entities.ProductAggregate{}, false
	}
	return s.items[i], true
}

// Products returns the aggregates in first-appearance order
func (s *AggregateSet) Products() []entities.ProductAggregate {
	out := make([]entities.ProductAggregate, len(s.items))
	copy(out, s.items)
	return out
}

// DroppedTotal returns the number of rows excluded from aggregation
func (s *AggregateSet) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

func (s *AggregateSet) fold(stock entities.LocationStock, code entities.ProductCode, name string, easy bool) {
	i, ok := s.index[code]
	if !ok {
		i = len(s.items)
		s.index[code] = i
		s.items = append(s.items, entities.NewProductAggregate(code, name, stock.Sequence))
	}
	s.items[i] = s.items[i].WithStock(stock, easy)
}

// Aggregator folds inventory rows into per-product aggregates
type Aggregator struct {
	config Config
}

// NewAggregator creates an aggregator using the zone and level rules in config
func NewAggregator(config Config) *Aggregator {
	return &Aggregator{config: config}
}

// Aggregate folds rows sequentially. Rows without a product code, outside the
// pickable zone, or with an unparseable location are dropped and counted.
func (a *Aggregator) Aggregate(rows []*entities.InventoryRecord) *AggregateSet {
	set := newAggregateSet(len(rows) / 2)
	a.foldRange(set, rows, 0)
	return set
}

// AggregateParallel folds rows across workers and merges the shards by row
// sequence, producing the same result as Aggregate.
func (a *Aggregator) AggregateParallel(ctx context.Context, rows []*entities.InventoryRecord, workers int) (*AggregateSet, error) {
	if workers <= 1 || len(rows) < minShardRows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return a.Aggregate(rows), nil
	}

	shardSize := (len(rows) + workers - 1) / workers
	partials := make([]*AggregateSet, 0, workers)
	for start := 0; start < len(rows); start += shardSize {
		partials = append(partials, newAggregateSet(shardSize/2))
	}

	g, gctx := errgroup.WithContext(ctx)
	for shard := range partials {
		start := shard * shardSize
		end := min(start+shardSize, len(rows))
		set := partials[shard]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a.foldRange(set, rows[start:end], start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeAggregateSets(partials), nil
}

func (a *Aggregator) foldRange(set *AggregateSet, rows []*entities.InventoryRecord, offset int) {
	for i, row := range rows {
		set.Rows++
		stock, reason := a.accept(row, offset+i)
		if reason != "" {
			set.Dropped[reason]++
			continue
		}
		code := entities.NormalizeProductCode(string(row.ProductCode))
		set.fold(stock, code, strings.TrimSpace(row.ProductName), stock.Location.IsEasyAccess(a.config.EasyAccessLevels))
	}
}

// accept returns the stock a row contributes, or the reason it is excluded
func (a *Aggregator) accept(row *entities.InventoryRecord, sequence int) (entities.LocationStock, string) {
	if row == nil || entities.NormalizeProductCode(string(row.ProductCode)) == "" {
		return entities.LocationStock{}, entities.DefectMissingProductCode
	}
	raw := strings.TrimSpace(row.LocationRaw)
	if !entities.ZoneMatches(raw, a.config.ZonePrefix) {
		return entities.LocationStock{}, entities.DefectZoneMismatch
	}
	if row.Defect != "" {
		return entities.LocationStock{}, row.Defect
	}
	if row.Quantity.IsNegative() {
		return entities.LocationStock{}, entities.DefectInvalidQuantity
	}
	loc, err := entities.ParseLocation(raw)
	if err != nil {
		return entities.LocationStock{}, entities.DefectInvalidLocation
	}
	return entities.LocationStock{Location: loc, Quantity: row.Quantity, Sequence: sequence}, ""
}

func mergeAggregateSets(partials []*AggregateSet) *AggregateSet {
	expected := 0
	for _, p := range partials {
		expected += p.Len()
	}
	merged := newAggregateSet(expected)

	for _, p := range partials {
		merged.Rows += p.Rows
		for reason, n := range p.Dropped {
			merged.Dropped[reason] += n
		}
		for _, agg := range p.items {
			i, ok := merged.index[agg.ProductCode]
			if !ok {
				merged.index[agg.ProductCode] = len(merged.items)
				merged.items = append(merged.items, entities.NewProductAggregate(agg.ProductCode, agg.ProductName, agg.Sequence))
				i = len(merged.items) - 1
			}
			m := &merged.items[i]
			if agg.Sequence < m.Sequence {
				m.Sequence = agg.Sequence
				m.ProductName = agg.ProductName
			}
			m.Locations = append(m.Locations, agg.Locations...)
			m.EasyAccessLocations = append(m.EasyAccessLocations, agg.EasyAccessLocations...)
			m.TotalQuantity = m.TotalQuantity.Add(agg.TotalQuantity)
			if agg.MinColumn < m.MinColumn {
				m.MinColumn = agg.MinColumn
			}
		}
	}

	for i := range merged.items {
		m := &merged.items[i]
		sort.SliceStable(m.Locations, func(x, y int) bool { return m.Locations[x].Sequence < m.Locations[y].Sequence })
		sort.SliceStable(m.EasyAccessLocations, func(x, y int) bool {
			return m.EasyAccessLocations[x].Sequence < m.EasyAccessLocations[y].Sequence
		})
	}
	sort.SliceStable(merged.items, func(x, y int) bool { return merged.items[x].Sequence < merged.items[y].Sequence })
	for i, agg := range merged.items {
		merged.index[agg.ProductCode] = i
	}

	return merged
}
