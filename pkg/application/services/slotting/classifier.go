package slotting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// Classification holds the ranked lists of one run
type Classification struct {
	MoveToFront          []entities.RankedProduct
	MoveFromFront        []entities.RankedProduct
	ZeroDemandEasyAccess []entities.RankedProduct
	FullRanking          []entities.RankedProduct
}

// Category returns the ranked list for a category
func (c *Classification) Category(category entities.Category) []entities.RankedProduct {
	switch category {
	case entities.MoveToFront:
		return c.MoveToFront
	case entities.MoveFromFront:
		return c.MoveFromFront
	case entities.ZeroDemandEasyAccess:
		return c.ZeroDemandEasyAccess
	case entities.FullRanking:
		return c.FullRanking
	default:
		return nil
	}
}

// rule is a category's filter and ordering
type rule struct {
	category entities.Category
	keep     func(p entities.ProductAggregate) bool
	less     func(a, b entities.ProductAggregate) bool
}

// Classifier joins demand into aggregates and ranks them into categories
type Classifier struct {
	config Config
	rules  []rule
}

// NewClassifier creates a classifier using the thresholds in config
func NewClassifier(config Config) *Classifier {
	moveToFrontSales := decimal.NewFromInt(config.MoveToFrontMinSales)
	moveFromFrontSales := decimal.NewFromInt(config.MoveFromFrontMaxSales)

	salesDesc := func(a, b entities.ProductAggregate) bool { return a.SalesQuantity.GreaterThan(b.SalesQuantity) }

	return &Classifier{
		config: config,
		rules: []rule{
			{
				category: entities.MoveToFront,
				keep: func(p entities.ProductAggregate) bool {
					return p.SalesQuantity.GreaterThanOrEqual(moveToFrontSales) && p.MinColumn > config.MoveToFrontMinColumn
				},
				less: salesDesc,
			},
			{
				category: entities.MoveFromFront,
				keep: func(p entities.ProductAggregate) bool {
					return p.SalesQuantity.LessThan(moveFromFrontSales) && p.MinColumn <= config.MoveFromFrontMaxColumn
				},
				less: func(a, b entities.ProductAggregate) bool { return a.SalesQuantity.LessThan(b.SalesQuantity) },
			},
			{
				category: entities.ZeroDemandEasyAccess,
				keep: func(p entities.ProductAggregate) bool {
					return p.SalesQuantity.IsZero() && p.HasEasyAccess()
				},
				less: func(a, b entities.ProductAggregate) bool { return a.TotalQuantity.GreaterThan(b.TotalQuantity) },
			},
			{
				category: entities.FullRanking,
				keep:     func(entities.ProductAggregate) bool { return true },
				less:     salesDesc,
			},
		},
	}
}

// Join returns the aggregates in first-appearance order, each carrying its demand from index
func (c *Classifier) Join(set *AggregateSet, index *DemandIndex) []entities.ProductAggregate {
	products := set.Products()
	for i, p := range products {
		products[i] = p.WithSales(index.Quantity(p.ProductCode))
	}
	return products
}

// Classify filters and ranks joined aggregates into every category.
// Ties keep the input order, so callers pass aggregates in first-appearance order.
func (c *Classifier) Classify(products []entities.ProductAggregate) *Classification {
	result := &Classification{}
	for _, r := range c.rules {
		ranked := c.rank(products, r)
		switch r.category {
		case entities.MoveToFront:
			result.MoveToFront = ranked
		case entities.MoveFromFront:
			result.MoveFromFront = ranked
		case entities.ZeroDemandEasyAccess:
			result.ZeroDemandEasyAccess = ranked
		case entities.FullRanking:
			result.FullRanking = ranked
		}
	}
	return result
}

func (c *Classifier) rank(products []entities.ProductAggregate, r rule) []entities.RankedProduct {
	selected := make([]entities.ProductAggregate, 0, len(products))
	for _, p := range products {
		if r.keep(p) {
			selected = append(selected, p)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool { return r.less(selected[i], selected[j]) })

	limit := c.config.SummaryLimit(r.category)
	suffix := c.config.moreSuffixFormat()
	ranked := make([]entities.RankedProduct, len(selected))
	for i, p := range selected {
		ranked[i] = entities.RankedProduct{
			Rank:            i + 1,
			ProductCode:     p.ProductCode,
			ProductName:     p.ProductName,
			SalesQuantity:   p.SalesQuantity,
			TotalQuantity:   p.TotalQuantity,
			MinColumn:       p.MinColumn,
			LocationCount:   len(p.Locations),
			LocationSummary: SummarizeLocations(p.Locations, limit, suffix),
			Reason:          r.category.Reason(),
		}
	}
	return ranked
}
