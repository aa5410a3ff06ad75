// Package slotting classifies pickable inventory into slotting recommendations.
//
// The pipeline is a single in-memory pass: inventory rows are folded into one
// aggregate per product, recent outbound demand for one sales channel is
// joined in, and the joined set is filtered and ranked into fixed categories.
package slotting

import (
	"fmt"

	"github.com/vsinha/slotting/pkg/domain/entities"
)

// DefaultMoreSuffixFormat is appended to a truncated location summary; %d is the number of omitted locations
const DefaultMoreSuffixFormat = " 외 %d곳"

// Config holds the thresholds and zone rules used by the engine
type Config struct {
	// ChannelFilter selects sales rows whose channel contains it
	ChannelFilter string
	// ZonePrefix selects pickable storage locations
	ZonePrefix string
	// EasyAccessLevels are the shelf levels counted as easy access
	EasyAccessLevels []int

	// MoveToFrontMinSales and MoveToFrontMinColumn: sales >= min AND min column > column
	MoveToFrontMinSales  int64
	MoveToFrontMinColumn int
	// MoveFromFrontMaxSales and MoveFromFrontMaxColumn: sales < max AND min column <= column
	MoveFromFrontMaxSales  int64
	MoveFromFrontMaxColumn int

	// Location summary limits per category (0 = unlimited)
	MoveToFrontSummaryLimit   int
	MoveFromFrontSummaryLimit int
	ZeroDemandSummaryLimit    int
	FullRankingSummaryLimit   int
	MoreSuffixFormat          string
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		ChannelFilter:             "B2C",
		ZonePrefix:                "CC",
		EasyAccessLevels:          append([]int(nil), entities.DefaultEasyAccessLevels...),
		MoveToFrontMinSales:       500,
		MoveToFrontMinColumn:      3,
		MoveFromFrontMaxSales:     100,
		MoveFromFrontMaxColumn:    1,
		MoveToFrontSummaryLimit:   5,
		MoveFromFrontSummaryLimit: 0,
		ZeroDemandSummaryLimit:    5,
		FullRankingSummaryLimit:   3,
		MoreSuffixFormat:          DefaultMoreSuffixFormat,
	}
}

// Validate checks the configuration for values the engine cannot work with
func (c Config) Validate() error {
	if c.MoveToFrontMinSales < 0 {
		return fmt.Errorf("move-to-front minimum sales cannot be negative, got %d", c.MoveToFrontMinSales)
	}
	if c.MoveFromFrontMaxSales < 0 {
		return fmt.Errorf("move-from-front maximum sales cannot be negative, got %d", c.MoveFromFrontMaxSales)
	}
	limits := map[string]int{
		"move-to-front":   c.MoveToFrontSummaryLimit,
		"move-from-front": c.MoveFromFrontSummaryLimit,
		"zero-demand":     c.ZeroDemandSummaryLimit,
		"full-ranking":    c.FullRankingSummaryLimit,
	}
	for name, limit := range limits {
		if limit < 0 {
			return fmt.Errorf("%s summary limit cannot be negative, got %d", name, limit)
		}
	}
	return nil
}

// SummaryLimit returns the number of locations listed for a category (0 = unlimited)
func (c Config) SummaryLimit(category entities.Category) int {
	switch category {
	case entities.MoveToFront:
		return c.MoveToFrontSummaryLimit
	case entities.MoveFromFront:
		return c.MoveFromFrontSummaryLimit
	case entities.ZeroDemandEasyAccess:
		return c.ZeroDemandSummaryLimit
	case entities.FullRanking:
		return c.FullRankingSummaryLimit
	default:
		return 0
	}
}

func (c Config) moreSuffixFormat() string {
	if c.MoreSuffixFormat == "" {
		return DefaultMoreSuffixFormat
	}
	return c.MoreSuffixFormat
}
